package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return badRequest(err)
	}

	return nil
}

// CreateCategory handles POST /v1/categories
// @Summary Create category
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body rest.CategoryRequest true "Category"
// @Success 201 {object} rest.MessageDataResponse[rest.Category]
// @Failure 400,401,403,422,500 {object} rest.ErrorResponse
// @Router /v1/categories [post]
func (h *NewsHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), actorFrom(c), req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageDataResponse[Category]{
		Message: "Category created successfully",
		Data:    NewCategory(*category),
	})
}

// UpdateCategory handles PUT /v1/categories/:id
// @Summary Update category
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body rest.CategoryRequest true "Changed fields"
// @Success 200 {object} rest.MessageDataResponse[rest.Category]
// @Failure 400,401,403,404,422,500 {object} rest.ErrorResponse
// @Router /v1/categories/{id} [put]
func (h *NewsHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), actorFrom(c), id, req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageDataResponse[Category]{
		Message: "Category updated successfully",
		Data:    NewCategory(*category),
	})
}

// DeleteCategory handles DELETE /v1/categories/:id
// @Summary Delete category
// @Description Categories that still have articles are not deleted.
// @Tags cms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,403,404,422,500 {object} rest.ErrorResponse
// @Router /v1/categories/{id} [delete]
func (h *NewsHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), actorFrom(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}

// CreateTag handles POST /v1/tags
// @Summary Create tag
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body rest.TagRequest true "Tag"
// @Success 201 {object} rest.MessageDataResponse[rest.Tag]
// @Failure 400,401,403,422,500 {object} rest.ErrorResponse
// @Router /v1/tags [post]
func (h *NewsHandler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tag, err := h.uc.CreateTag(c.Request().Context(), actorFrom(c), req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageDataResponse[Tag]{
		Message: "Tag created successfully",
		Data:    NewTag(*tag),
	})
}

// UpdateTag handles PUT /v1/tags/:id
// @Summary Update tag
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param body body rest.TagRequest true "Changed fields"
// @Success 200 {object} rest.MessageDataResponse[rest.Tag]
// @Failure 400,401,403,404,422,500 {object} rest.ErrorResponse
// @Router /v1/tags/{id} [put]
func (h *NewsHandler) UpdateTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tag, err := h.uc.UpdateTag(c.Request().Context(), actorFrom(c), id, req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageDataResponse[Tag]{
		Message: "Tag updated successfully",
		Data:    NewTag(*tag),
	})
}

// DeleteTag handles DELETE /v1/tags/:id
// @Summary Delete tag
// @Tags cms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /v1/tags/{id} [delete]
func (h *NewsHandler) DeleteTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteTag(c.Request().Context(), actorFrom(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Tag deleted successfully"})
}

// CreateArticle handles POST /v1/articles
// @Summary Create article
// @Description New articles are drafts unless status is given. Tags are slugs.
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body rest.ArticleRequest true "Article"
// @Success 201 {object} rest.MessageDataResponse[rest.Article]
// @Failure 400,401,403,422,500 {object} rest.ErrorResponse
// @Router /v1/articles [post]
func (h *NewsHandler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	article, err := h.uc.CreateArticle(c.Request().Context(), actorFrom(c), req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageDataResponse[Article]{
		Message: "Article created successfully",
		Data:    NewArticle(*article, h.now()),
	})
}

// UpdateArticle handles PUT /v1/articles/:id
// @Summary Update article
// @Description Authors may only update their own articles. Omitted tags keep the current ones.
// @Tags cms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param body body rest.ArticleRequest true "Changed fields"
// @Success 200 {object} rest.MessageDataResponse[rest.Article]
// @Failure 400,401,403,404,422,500 {object} rest.ErrorResponse
// @Router /v1/articles/{id} [put]
func (h *NewsHandler) UpdateArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ArticleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	article, err := h.uc.UpdateArticle(c.Request().Context(), actorFrom(c), id, req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageDataResponse[Article]{
		Message: "Article updated successfully",
		Data:    NewArticle(*article, h.now()),
	})
}

// DeleteArticle handles DELETE /v1/articles/:id
// @Summary Delete article
// @Tags cms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /v1/articles/{id} [delete]
func (h *NewsHandler) DeleteArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteArticle(c.Request().Context(), actorFrom(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Article deleted successfully"})
}
