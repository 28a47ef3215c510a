package category

import "newsapi-backend/internal/shared/apperror"

var ErrCategoryNotFound = apperror.NotFound("Category not found")
