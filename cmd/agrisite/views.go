package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/agripal/agrisite"
)

// devViews returns unstyled HTML views covering every page the engine
// renders. They are deliberately plain; real sites replace them wholesale.
func devViews() agrisite.ViewFuncs {
	return agrisite.ViewFuncs{
		Home:           homeView,
		Books:          booksView,
		Courses:        coursesView,
		Blog:           blogView,
		Article:        articleView,
		SignIn:         signInView,
		AdminDashboard: adminView,
		NotFound:       notFoundView,
		ServerError:    serverErrorView,
	}
}

func page(title string, body func(w io.Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title></head><body>", esc(title))
		fmt.Fprint(w, `<nav><a href="/">Home</a> | <a href="/books/">Library</a> | <a href="/courses/">Courses</a> | <a href="/blog/">Blog</a> | <a href="/admin/">Admin</a></nav><hr>`)
		body(w)
		fmt.Fprint(w, "</body></html>")
		return nil
	})
}

func esc(s string) string { return html.EscapeString(s) }

// optInt and optFloat render optional numeric fields: nil stays blank so a
// resubmitted form round-trips the column unchanged.
func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func coverImg(url string) string {
	if url == "" {
		url = "/public/placeholder.svg"
	}
	return fmt.Sprintf(`<img src=%q alt="cover" width="160">`, url)
}

func homeView(data agrisite.HomeData) templ.Component {
	return page("Home", func(w io.Writer) {
		fmt.Fprint(w, "<h1>Agricultural Insights</h1><h2>Latest Articles</h2><ul>")
		for _, p := range data.Posts {
			fmt.Fprintf(w, `<li><a href="%s/">%s</a> by %s</li>`, esc(p.Link), esc(p.Title), esc(p.Author))
		}
		fmt.Fprint(w, "</ul>")
	})
}

func booksView(data agrisite.BookListData) templ.Component {
	return page("Library", func(w io.Writer) {
		fmt.Fprint(w, "<h1>Library</h1>")
		fmt.Fprintf(w, `<form method="get"><input name="q" value=%q placeholder="Search books or authors...">`+
			`<input name="category" value=%q><select name="sort">`+
			`<option value="title">Title</option><option value="author">Author</option><option value="rating">Rating</option>`+
			`</select><button>Search</button></form>`, data.Term, data.Category)
		for _, b := range data.Books {
			rating := ""
			if b.Rating != nil {
				rating = fmt.Sprintf(" — %d/5", *b.Rating)
			}
			fmt.Fprintf(w, `<div>%s<h3>%s</h3><p>%s — %s%s</p></div>`,
				coverImg(b.CoverImageURL), esc(b.Title), esc(b.Author), esc(b.Category), rating)
		}
	})
}

func coursesView(data agrisite.CourseListData) templ.Component {
	return page("Courses", func(w io.Writer) {
		fmt.Fprint(w, "<h1>Professional Courses</h1>")
		fmt.Fprintf(w, `<form method="get"><input name="q" value=%q placeholder="Search courses..."><button>Search</button></form>`, data.Term)
		for _, c := range data.Courses {
			fmt.Fprintf(w, `<div>%s<h3>%s</h3><p>%s — %s — %s</p></div>`,
				coverImg(c.CoverImageURL), esc(c.Title), esc(c.Instructor), esc(c.Category), esc(c.DifficultyLevel))
		}
	})
}

func blogView(data agrisite.BlogListData) templ.Component {
	return page("Blog", func(w io.Writer) {
		fmt.Fprint(w, "<h1>Blog</h1>")
		if data.Message != "" {
			fmt.Fprintf(w, "<p><em>%s</em></p>", esc(data.Message))
		}
		fmt.Fprintf(w, `<form method="get"><input name="q" value=%q placeholder="Search articles..."><select name="category">`, data.Term)
		for _, cat := range data.Categories {
			fmt.Fprintf(w, `<option value=%q>%s</option>`, cat, esc(cat))
		}
		fmt.Fprint(w, `</select><select name="sort"><option value="date">Latest</option><option value="title">Title</option><option value="author">Author</option></select><button>Filter</button></form>`)
		for _, p := range data.Posts {
			liked := ""
			if data.Liked[p.ID] {
				liked = " (liked)"
			}
			fmt.Fprintf(w, `<div><h3><a href="%s/">%s</a></h3><p>By %s in %s — %d comments, %d likes%s, %d shares</p></div>`,
				esc(p.Link), esc(p.Title), esc(p.Author), esc(p.Category),
				data.CommentCounts[p.ID], p.LikesCount, liked, p.SharesCount)
		}
		fmt.Fprint(w, `<h2>Stay Updated</h2><form method="post" action="/subscribe"><input type="email" name="email" placeholder="Enter your email"><button>Subscribe</button></form>`)
	})
}

func articleView(data agrisite.ArticleData) templ.Component {
	p := data.Post
	return page(p.Title, func(w io.Writer) {
		fmt.Fprintf(w, "<h1>%s</h1><p>By %s — %s</p>%s<div>%s</div>",
			esc(p.Title), esc(p.Author), esc(p.Category), coverImg(p.CoverImageURL), esc(p.Content))
		if data.Message != "" {
			fmt.Fprintf(w, "<p><em>%s</em></p>", esc(data.Message))
		}
		fmt.Fprintf(w, "<h2>Comments (%d)</h2>", len(data.Comments))
		fmt.Fprintf(w, `<form method="post" action="%s/comments">`+
			`<input name="name" placeholder="Your name"><input name="email" placeholder="Your email">`+
			`<textarea name="text" placeholder="Share your thoughts..."></textarea><button>Post Comment</button></form>`, esc(p.Link))
		for _, cm := range data.Comments {
			fmt.Fprintf(w, "<div><strong>%s</strong> — %s<p>%s</p></div>",
				esc(cm.UserName), esc(cm.CreatedAt), esc(cm.CommentText))
		}
	})
}

func signInView(data agrisite.SignInData) templ.Component {
	return page("Sign In", func(w io.Writer) {
		fmt.Fprint(w, "<h1>Admin Sign In</h1>")
		if data.ShowError {
			fmt.Fprint(w, "<p><em>Invalid email or password. Please check your credentials and try again.</em></p>")
		}
		fmt.Fprintf(w, `<form method="post" action="/signin/"><input type="hidden" name="_csrf" value=%q>`+
			`<input type="email" name="email" placeholder="Email"><input type="password" name="password" placeholder="Password">`+
			`<button>Sign In</button></form>`, data.CsrfToken)
	})
}

func adminView(data agrisite.AdminData) templ.Component {
	return page("Admin Dashboard", func(w io.Writer) {
		fmt.Fprint(w, `<h1>Admin Dashboard</h1><form method="post" action="/signout/">`)
		csrf(w, data.CsrfToken)
		fmt.Fprint(w, `<button>Sign Out</button></form>`)
		if data.Message != "" {
			fmt.Fprintf(w, "<p><em>%s</em></p>", esc(data.Message))
		}
		fmt.Fprint(w, `<p><a href="/admin/?tab=library">Library</a> | <a href="/admin/?tab=courses">Courses</a> | <a href="/admin/?tab=blog">Blog</a> | <a href="/admin/?tab=subscribers">Subscribers</a></p>`)
		switch data.ActiveTab {
		case "courses":
			adminCourses(w, data)
		case "blog":
			adminBlog(w, data)
		case "subscribers":
			adminSubscribers(w, data)
		default:
			adminBooks(w, data)
		}
	})
}

func csrf(w io.Writer, token string) {
	fmt.Fprintf(w, `<input type="hidden" name="_csrf" value=%q>`, token)
}

func adminBooks(w io.Writer, data agrisite.AdminData) {
	fmt.Fprint(w, `<h2>Add New Book</h2><form method="post" action="/admin/books/" enctype="multipart/form-data">`)
	csrf(w, data.CsrfToken)
	fmt.Fprint(w, `<input name="title" placeholder="Title"><input name="author" placeholder="Author">`+
		`<input name="category" placeholder="Category"><input name="isbn" placeholder="ISBN (optional)">`+
		`<input type="date" name="publication_date"><input name="whatsapp_link" placeholder="WhatsApp link">`+
		`<input name="rating" placeholder="Rating 1-5"><input name="price" placeholder="Price (optional)">`+
		`<textarea name="description" placeholder="Description"></textarea>`+
		`<input type="file" name="cover_image"><button>Add Book</button></form><h2>Books</h2>`)
	for _, b := range data.Books {
		fmt.Fprintf(w, `<div>%s by %s <form method="post" action="/admin/books/%s/delete">`,
			esc(b.Title), esc(b.Author), esc(b.ID))
		csrf(w, data.CsrfToken)
		fmt.Fprintf(w, `<input type="hidden" name="cover_url" value=%q><button>Delete</button></form></div>`, b.CoverImageURL)
	}
}

func adminCourses(w io.Writer, data agrisite.AdminData) {
	editingID, heading := "", "Add New Course"
	var editing agrisite.Course
	if data.EditingCourse != nil {
		editing = *data.EditingCourse
		editingID = editing.ID
		heading = "Edit Course"
	}
	fmt.Fprintf(w, `<h2>%s</h2><form method="post" action="/admin/courses/" enctype="multipart/form-data">`, heading)
	csrf(w, data.CsrfToken)
	fmt.Fprintf(w, `<input type="hidden" name="course_id" value=%q>`, editingID)
	fmt.Fprintf(w, `<input name="title" placeholder="Title" value=%q><input name="instructor" placeholder="Instructor" value=%q>`+
		`<input name="category" placeholder="Category" value=%q><input name="difficulty_level" placeholder="Level" value=%q>`+
		`<input name="duration_days" placeholder="Days" value=%q><input name="duration_hours" placeholder="Hours" value=%q>`+
		`<input name="price" placeholder="Price" value=%q><input type="date" name="course_date" value=%q>`+
		`<select name="classification"><option value=""></option><option value="online">Online</option><option value="physical">Physical</option></select>`+
		`<input name="whatsapp_link" placeholder="WhatsApp link" value=%q>`+
		`<textarea name="description" placeholder="Description">%s</textarea>`+
		`<textarea name="prerequisites" placeholder="Prerequisites">%s</textarea>`+
		`<input type="file" name="cover_image"><button>Save Course</button></form>`,
		editing.Title, editing.Instructor, editing.Category, editing.DifficultyLevel,
		optInt(editing.DurationDays), optInt(editing.DurationHours), optFloat(editing.Price),
		editing.CourseDate, editing.WhatsappLink, esc(editing.Description), esc(editing.Prerequisites))
	if editingID != "" {
		fmt.Fprint(w, `<p><a href="/admin/?tab=courses">Cancel edit</a></p>`)
	}
	fmt.Fprint(w, "<h2>Courses</h2>")
	for _, c := range data.Courses {
		fmt.Fprintf(w, `<div>%s — %s <a href="/admin/courses/%s/edit/">Edit</a> <form method="post" action="/admin/courses/%s/delete">`,
			esc(c.Title), esc(c.Instructor), esc(c.ID), esc(c.ID))
		csrf(w, data.CsrfToken)
		fmt.Fprintf(w, `<input type="hidden" name="cover_url" value=%q><button>Delete</button></form></div>`, c.CoverImageURL)
	}
}

func adminBlog(w io.Writer, data agrisite.AdminData) {
	fmt.Fprint(w, `<h2>New Blog Post</h2><form method="post" action="/admin/blog/" enctype="multipart/form-data">`)
	csrf(w, data.CsrfToken)
	fmt.Fprint(w, `<input name="title" placeholder="Title"><input name="author" placeholder="Author">`+
		`<input name="category" placeholder="Category"><input name="excerpt" placeholder="Excerpt">`+
		`<textarea name="content" placeholder="Content"></textarea>`+
		`<select name="status"><option value="published">Published</option><option value="draft">Draft</option></select>`+
		`<input type="file" name="cover_image"><button>Publish</button></form><h2>Posts</h2>`)
	for _, p := range data.Posts {
		status := "draft"
		if p.Published {
			status = "published"
		}
		fmt.Fprintf(w, `<div>%s (%s) <form method="post" action="/admin/blog/%s/delete">`,
			esc(p.Title), status, esc(p.ID))
		csrf(w, data.CsrfToken)
		fmt.Fprint(w, `<button>Delete</button></form></div>`)
	}
}

func adminSubscribers(w io.Writer, data agrisite.AdminData) {
	fmt.Fprint(w, "<h2>Subscribers</h2>")
	for _, s := range data.Subscribers {
		fmt.Fprintf(w, `<div>%s — %s <form method="post" action="/admin/subscribers/%s/delete" onsubmit="return confirm('Are you sure you want to delete this subscriber?')">`,
			esc(s.Email), esc(s.SubscribedAt), esc(s.ID))
		csrf(w, data.CsrfToken)
		fmt.Fprint(w, `<input type="hidden" name="confirm" value="true"><button>Delete</button></form></div>`)
	}
}

func notFoundView() templ.Component {
	return page("Not Found", func(w io.Writer) {
		fmt.Fprint(w, "<h1>404</h1><p>Page not found.</p>")
	})
}

func serverErrorView() templ.Component {
	return page("Error", func(w io.Writer) {
		fmt.Fprint(w, "<h1>500</h1><p>Something went wrong. Please try again.</p>")
	})
}
