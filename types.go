package agrisite

// Book is a library catalog entry. Optional numeric fields are pointers so
// a blank admin form field stays NULL in the database instead of zero.
type Book struct {
	ID              string
	Title           string
	Author          string
	Category        string
	Description     string
	ISBN            string
	PublicationYear *int
	CoverImageURL   string
	Price           *float64
	Rating          *int // 1-5
	WhatsappLink    string
	CreatedAt       string // RFC 3339
}

// Course is a professional course catalog entry.
type Course struct {
	ID              string
	Title           string
	Description     string
	Instructor      string
	Category        string
	DurationDays    *int
	DurationHours   *int
	DifficultyLevel string
	Price           *float64
	CoverImageURL   string
	Prerequisites   string
	WhatsappLink    string
	CourseDate      string
	Classification  string // "online" or "physical"
	CreatedAt       string
}

// BlogPost is an article with interaction counters. The slug is derived from
// the title once at creation time and never regenerated.
type BlogPost struct {
	ID            string
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Category      string
	Slug          string
	CoverImageURL string
	Published     bool
	LikesCount    int
	SharesCount   int
	CreatedAt     string
	Link          string
}

// BlogComment is a reader comment on a post. Comments are create-only and
// listed newest-first.
type BlogComment struct {
	ID          string
	BlogPostID  string
	UserName    string
	UserEmail   string
	CommentText string
	CreatedAt   string
}

// Subscriber is a newsletter signup. Email is unique.
type Subscriber struct {
	ID           string
	Email        string
	IsActive     bool
	SubscribedAt string
}
