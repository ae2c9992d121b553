package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUserExists         = errors.New("user already exists")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrCategoriesMissing = errors.New("one or more categories not found")
	ErrRelationViolation = errors.New("invalid product/category relation")
	ErrCategoryInUse     = errors.New("category is still associated with products")
)
