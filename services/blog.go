package services

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
)

type BlogPostInput struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug" binding:"omitempty,slug"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt"`
	CoverImageUrl string `json:"coverImageUrl"`
	Published     bool   `json:"published"`
	CategoryIDs   []uint `json:"categoryIds"`
}

type BlogPostPatch struct {
	Title         *string `json:"title" binding:"omitempty,min=1"`
	Slug          *string `json:"slug" binding:"omitempty,slug"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageUrl *string `json:"coverImageUrl"`
	Published     *bool   `json:"published"`
	CategoryIDs   *[]uint `json:"categoryIds"`
}

type BlogCategoryInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"omitempty,slug"`
}

type BlogService struct {
	store store.Storage
	now   func() time.Time
}

func NewBlogService(s store.Storage) *BlogService {
	return &BlogService{store: s, now: time.Now}
}

func (b *BlogService) withCategories(ctx context.Context, post *models.BlogPost) error {
	categories, err := b.store.ListPostCategories(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Categories = categories
	return nil
}

// ListPosts returns newest first. Drafts are only included for admins.
func (b *BlogService) ListPosts(ctx context.Context, includeDrafts bool, categorySlug string) ([]models.BlogPost, error) {
	filter := store.BlogPostFilter{PublishedOnly: !includeDrafts}
	if categorySlug != "" {
		category, err := b.store.GetBlogCategoryBySlug(ctx, categorySlug)
		if errors.Is(err, store.ErrNotFound) {
			return []models.BlogPost{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &category.ID
	}
	posts, err := b.store.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if err := b.withCategories(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (b *BlogService) GetPost(ctx context.Context, slug string, includeDrafts bool) (*models.BlogPost, error) {
	post, err := b.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	if !post.Published && !includeDrafts {
		return nil, newError(ErrNotFound, "Post not found")
	}
	if err := b.withCategories(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (b *BlogService) checkCategories(ctx context.Context, ids []uint) error {
	known, err := b.store.ListBlogCategories(ctx)
	if err != nil {
		return err
	}
	exists := make(map[uint]bool, len(known))
	for _, c := range known {
		exists[c.ID] = true
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !exists[id] {
			return invalid("Blog category %d does not exist", id)
		}
		if seen[id] {
			return invalid("Blog category %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

func (b *BlogService) CreatePost(ctx context.Context, admin Admin, in BlogPostInput) (*models.BlogPost, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	slug, err := deriveSlug(in.Slug, in.Title)
	if err != nil {
		return nil, err
	}
	in.Slug = slug
	if err := b.checkCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}
	if _, err := b.store.GetPostBySlug(ctx, in.Slug); err == nil {
		return nil, newError(ErrConflict, "Post slug %q already exists", in.Slug)
	}

	post := &models.BlogPost{
		Title:         in.Title,
		Slug:          in.Slug,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		CoverImageUrl: in.CoverImageUrl,
		AuthorID:      admin.UserID,
		Published:     in.Published,
	}
	if in.Published {
		now := b.now()
		post.PublishedAt = &now
	}

	err = b.store.WithTx(ctx, func(tx store.Storage) error {
		if err := tx.CreatePost(ctx, post); err != nil {
			return conflict(err, "Post slug %q already exists", in.Slug)
		}
		return tx.SetPostCategories(ctx, post.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	if err := b.withCategories(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial update. PublishedAt is stamped the first time
// a post goes live and kept if it is later unpublished.
func (b *BlogService) UpdatePost(ctx context.Context, id uint, patch BlogPostPatch) (*models.BlogPost, error) {
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}
	post, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	if patch.CategoryIDs != nil {
		if err := b.checkCategories(ctx, *patch.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if patch.Slug != nil && *patch.Slug != post.Slug {
		if _, err := b.store.GetPostBySlug(ctx, *patch.Slug); err == nil {
			return nil, newError(ErrConflict, "Post slug %q already exists", *patch.Slug)
		}
		post.Slug = *patch.Slug
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.CoverImageUrl != nil {
		post.CoverImageUrl = *patch.CoverImageUrl
	}
	if patch.Published != nil {
		post.Published = *patch.Published
		if post.Published && post.PublishedAt == nil {
			now := b.now()
			post.PublishedAt = &now
		}
	}

	err = b.store.WithTx(ctx, func(tx store.Storage) error {
		if err := tx.UpdatePost(ctx, post); err != nil {
			return conflict(notFound(err, "Post not found"), "Post slug %q already exists", post.Slug)
		}
		if patch.CategoryIDs != nil {
			return tx.SetPostCategories(ctx, post.ID, *patch.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := b.withCategories(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (b *BlogService) DeletePost(ctx context.Context, id uint) error {
	return notFound(b.store.DeletePost(ctx, id), "Post not found")
}

func (b *BlogService) ListCategories(ctx context.Context) ([]models.BlogCategory, error) {
	return b.store.ListBlogCategories(ctx)
}

func (b *BlogService) CreateCategory(ctx context.Context, in BlogCategoryInput) (*models.BlogCategory, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	slug, err := deriveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}
	in.Slug = slug
	category := &models.BlogCategory{Name: in.Name, Slug: in.Slug}
	if err := b.store.CreateBlogCategory(ctx, category); err != nil {
		return nil, conflict(err, "Blog category slug %q already exists", in.Slug)
	}
	return category, nil
}
