package rest

import "time"

type CardAuthor struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type Author struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// ArticleCard is the summary shape used in lists and on the homepage.
type ArticleCard struct {
	ID           int         `json:"id"`
	Slug         string      `json:"slug"`
	Href         string      `json:"href"`
	Title        string      `json:"title"`
	Excerpt      *string     `json:"excerpt"`
	Category     string      `json:"category,omitempty"`
	CategorySlug string      `json:"categorySlug,omitempty"`
	Timestamp    string      `json:"timestamp"`
	PublishedAt  *time.Time  `json:"publishedAt"`
	Image        *string     `json:"image"`
	ImageAlt     string      `json:"imageAlt"`
	Author       *CardAuthor `json:"author,omitempty"`
}

type ArticleTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Article is the full shape of a single article.
type Article struct {
	ID              int           `json:"id"`
	Slug            string        `json:"slug"`
	Href            string        `json:"href"`
	Title           string        `json:"title"`
	Excerpt         *string       `json:"excerpt"`
	Content         string        `json:"content"`
	ContentHTML     string        `json:"contentHtml"`
	Category        string        `json:"category,omitempty"`
	CategorySlug    string        `json:"categorySlug,omitempty"`
	Timestamp       string        `json:"timestamp"`
	PublishedAt     *time.Time    `json:"publishedAt"`
	Image           *string       `json:"image"`
	ImageAlt        string        `json:"imageAlt"`
	ViewsCount      int64         `json:"viewsCount"`
	Status          string        `json:"status"`
	IsFeatured      bool          `json:"isFeatured"`
	IsEditorPick    bool          `json:"isEditorPick"`
	Author          *Author       `json:"author,omitempty"`
	Tags            []ArticleTag  `json:"tags"`
	RelatedArticles []ArticleCard `json:"relatedArticles,omitempty"`
	MetaTitle       *string       `json:"metaTitle"`
	MetaDescription *string       `json:"metaDescription"`
	MetaKeywords    []string      `json:"metaKeywords"`
	OgImage         *string       `json:"ogImage"`
}

type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       int     `json:"order"`
	IsActive    bool    `json:"isActive"`
}

type Tag struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	ArticlesCount int    `json:"articlesCount"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ArticlePage struct {
	Data       []ArticleCard `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type SearchPage struct {
	Query      string        `json:"query"`
	Data       []ArticleCard `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type CategoryPage struct {
	Category   Category      `json:"category"`
	Data       []ArticleCard `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type TagPage struct {
	Tag        Tag           `json:"tag"`
	Data       []ArticleCard `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// Homepage keeps the fixed blocks; configured shelves are added as top-level
// keys when marshaled.
type Homepage struct {
	LeadArticle    *ArticleCard             `json:"leadArticle"`
	TopStories     []ArticleCard            `json:"topStories"`
	EditorPicks    []ArticleCard            `json:"editorPicks"`
	FlashNews      []ArticleCard            `json:"flashNews"`
	DecodeSections []ArticleCard            `json:"decodeSections"`
	Shelves        map[string][]ArticleCard `json:"-"`
}

type DataResponse[T any] struct {
	Data T `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MessageDataResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	Bio       *string   `json:"bio"`
	Provider  *string   `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

type Authorization struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ExpiresIn int    `json:"expires_in"`
}

type AuthResponse struct {
	Status        string        `json:"status"`
	Message       string        `json:"message,omitempty"`
	User          User          `json:"user"`
	Authorization Authorization `json:"authorization"`
}

type UserResponse struct {
	Status string `json:"status"`
	User   User   `json:"user"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RedirectResponse struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
	State       string `json:"state"`
}

// Request bodies.

type CategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

type TagRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type ArticleRequest struct {
	Slug            *string    `json:"slug"`
	Title           *string    `json:"title"`
	Excerpt         *string    `json:"excerpt"`
	Content         *string    `json:"content"`
	CategoryID      *int       `json:"category_id"`
	FeaturedImage   *string    `json:"featured_image"`
	ImageAlt        *string    `json:"image_alt"`
	Status          *string    `json:"status"`
	IsFeatured      *bool      `json:"is_featured"`
	IsEditorPick    *bool      `json:"is_editor_pick"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	MetaKeywords    []string   `json:"meta_keywords"`
	OgImage         *string    `json:"og_image"`
	PublishedAt     *time.Time `json:"published_at"`
	Tags            []string   `json:"tags"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type OAuthCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Query strings, decoded with urlstruct. Empty values mean "not set".

type ArticlesQuery struct {
	Page     int
	Limit    int
	Category string
	Tag      string
}

type SearchQuery struct {
	Q        string
	Page     int
	Limit    int
	Category string
	Tag      string
}

type PageQuery struct {
	Page  int
	Limit int
}

type FeaturedQuery struct {
	Limit int
}

type ArticleQuery struct {
	Include string
}

type OAuthCallbackQuery struct {
	Code  string
	State string
	Error string
}
