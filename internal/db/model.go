// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Article struct {
		ID, Slug, Title, Excerpt, Content, CategoryID, AuthorID, FeaturedImage, ImageAlt, Status, IsFeatured, IsEditorPick, ViewsCount, MetaTitle, MetaDescription, MetaKeywords, OgImage, PublishedAt, CreatedAt, UpdatedAt, DeletedAt string

		Category, Author string
	}
	ArticleTag struct {
		ArticleID, TagID string

		Tag string
	}
	Category struct {
		ID, Slug, Name, Description, Color, OrderNumber, IsActive, CreatedAt string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	PasswordReset struct {
		ID, Email, TokenHash, ExpiresAt, UsedAt, CreatedAt string
	}
	Tag struct {
		ID, Slug, Name, CreatedAt string
	}
	User struct {
		ID, Email, Name, PasswordHash, Role, Avatar, Bio, Provider, ProviderID, EmailVerifiedAt, CreatedAt, DeletedAt string
	}
}{
	Article: struct {
		ID, Slug, Title, Excerpt, Content, CategoryID, AuthorID, FeaturedImage, ImageAlt, Status, IsFeatured, IsEditorPick, ViewsCount, MetaTitle, MetaDescription, MetaKeywords, OgImage, PublishedAt, CreatedAt, UpdatedAt, DeletedAt string

		Category, Author string
	}{
		ID:              "articleId",
		Slug:            "slug",
		Title:           "title",
		Excerpt:         "excerpt",
		Content:         "content",
		CategoryID:      "categoryId",
		AuthorID:        "authorId",
		FeaturedImage:   "featuredImage",
		ImageAlt:        "imageAlt",
		Status:          "status",
		IsFeatured:      "isFeatured",
		IsEditorPick:    "isEditorPick",
		ViewsCount:      "viewsCount",
		MetaTitle:       "metaTitle",
		MetaDescription: "metaDescription",
		MetaKeywords:    "metaKeywords",
		OgImage:         "ogImage",
		PublishedAt:     "publishedAt",
		CreatedAt:       "createdAt",
		UpdatedAt:       "updatedAt",
		DeletedAt:       "deletedAt",

		Category: "Category",
		Author:   "Author",
	},
	ArticleTag: struct {
		ArticleID, TagID string

		Tag string
	}{
		ArticleID: "articleId",
		TagID:     "tagId",

		Tag: "Tag",
	},
	Category: struct {
		ID, Slug, Name, Description, Color, OrderNumber, IsActive, CreatedAt string
	}{
		ID:          "categoryId",
		Slug:        "slug",
		Name:        "name",
		Description: "description",
		Color:       "color",
		OrderNumber: "orderNumber",
		IsActive:    "isActive",
		CreatedAt:   "createdAt",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	PasswordReset: struct {
		ID, Email, TokenHash, ExpiresAt, UsedAt, CreatedAt string
	}{
		ID:        "passwordResetId",
		Email:     "email",
		TokenHash: "tokenHash",
		ExpiresAt: "expiresAt",
		UsedAt:    "usedAt",
		CreatedAt: "createdAt",
	},
	Tag: struct {
		ID, Slug, Name, CreatedAt string
	}{
		ID:        "tagId",
		Slug:      "slug",
		Name:      "name",
		CreatedAt: "createdAt",
	},
	User: struct {
		ID, Email, Name, PasswordHash, Role, Avatar, Bio, Provider, ProviderID, EmailVerifiedAt, CreatedAt, DeletedAt string
	}{
		ID:              "userId",
		Email:           "email",
		Name:            "name",
		PasswordHash:    "passwordHash",
		Role:            "role",
		Avatar:          "avatar",
		Bio:             "bio",
		Provider:        "provider",
		ProviderID:      "providerId",
		EmailVerifiedAt: "emailVerifiedAt",
		CreatedAt:       "createdAt",
		DeletedAt:       "deletedAt",
	},
}

var Tables = struct {
	Article struct {
		Name, Alias string
	}
	ArticleTag struct {
		Name, Alias string
	}
	Category struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	PasswordReset struct {
		Name, Alias string
	}
	Tag struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	Article: struct {
		Name, Alias string
	}{
		Name:  "articles",
		Alias: "t",
	},
	ArticleTag: struct {
		Name, Alias string
	}{
		Name:  "articleTags",
		Alias: "t",
	},
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	PasswordReset: struct {
		Name, Alias string
	}{
		Name:  "passwordResets",
		Alias: "t",
	},
	Tag: struct {
		Name, Alias string
	}{
		Name:  "tags",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID              int        `pg:"articleId,pk"`
	Slug            string     `pg:"slug,use_zero"`
	Title           string     `pg:"title,use_zero"`
	Excerpt         *string    `pg:"excerpt"`
	Content         string     `pg:"content,use_zero"`
	CategoryID      int        `pg:"categoryId,use_zero"`
	AuthorID        int        `pg:"authorId,use_zero"`
	FeaturedImage   *string    `pg:"featuredImage"`
	ImageAlt        *string    `pg:"imageAlt"`
	Status          string     `pg:"status,use_zero"`
	IsFeatured      bool       `pg:"isFeatured,use_zero"`
	IsEditorPick    bool       `pg:"isEditorPick,use_zero"`
	ViewsCount      int64      `pg:"viewsCount,use_zero"`
	MetaTitle       *string    `pg:"metaTitle"`
	MetaDescription *string    `pg:"metaDescription"`
	MetaKeywords    []string   `pg:"metaKeywords,array"`
	OgImage         *string    `pg:"ogImage"`
	PublishedAt     *time.Time `pg:"publishedAt"`
	CreatedAt       time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt       *time.Time `pg:"updatedAt"`
	DeletedAt       *time.Time `pg:"deletedAt,soft_delete"`

	Category *Category `pg:"fk:categoryId,rel:has-one"`
	Author   *User     `pg:"fk:authorId,rel:has-one"`
}

type ArticleTag struct {
	tableName struct{} `pg:"articleTags,alias:t,discard_unknown_columns"`

	ArticleID int `pg:"articleId,pk"`
	TagID     int `pg:"tagId,pk"`

	Tag *Tag `pg:"fk:tagId,rel:has-one"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"categoryId,pk"`
	Slug        string    `pg:"slug,use_zero"`
	Name        string    `pg:"name,use_zero"`
	Description *string   `pg:"description"`
	Color       *string   `pg:"color"`
	OrderNumber int       `pg:"orderNumber,use_zero"`
	IsActive    bool      `pg:"isActive,use_zero"`
	CreatedAt   time.Time `pg:"createdAt,use_zero"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type PasswordReset struct {
	tableName struct{} `pg:"passwordResets,alias:t,discard_unknown_columns"`

	ID        int        `pg:"passwordResetId,pk"`
	Email     string     `pg:"email,use_zero"`
	TokenHash string     `pg:"tokenHash,use_zero"`
	ExpiresAt time.Time  `pg:"expiresAt,use_zero"`
	UsedAt    *time.Time `pg:"usedAt"`
	CreatedAt time.Time  `pg:"createdAt,use_zero"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	ID        int       `pg:"tagId,pk"`
	Slug      string    `pg:"slug,use_zero"`
	Name      string    `pg:"name,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID              int        `pg:"userId,pk"`
	Email           string     `pg:"email,use_zero"`
	Name            string     `pg:"name,use_zero"`
	PasswordHash    string     `pg:"passwordHash,use_zero"`
	Role            string     `pg:"role,use_zero"`
	Avatar          *string    `pg:"avatar"`
	Bio             *string    `pg:"bio"`
	Provider        *string    `pg:"provider"`
	ProviderID      *string    `pg:"providerId"`
	EmailVerifiedAt *time.Time `pg:"emailVerifiedAt"`
	CreatedAt       time.Time  `pg:"createdAt,use_zero"`
	DeletedAt       *time.Time `pg:"deletedAt,soft_delete"`
}
