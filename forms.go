package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// formValidator wraps go-playground/validator for Echo's c.Validate.
type formValidator struct {
	validator *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{validator: validator.New()}
}

// Validate calls the underlying validator.
func (fv *formValidator) Validate(i interface{}) error {
	return fv.validator.Struct(i)
}

type registerForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required,max=72"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type postForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImageURL string `form:"image_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
}

type commentForm struct {
	Text string `form:"text" validate:"required,max=2000"`
}

// fieldLabels maps struct field names to the labels shown in flash messages.
var fieldLabels = map[string]string{
	"Name":     "name",
	"Email":    "email",
	"Password": "password",
	"Title":    "title",
	"Subtitle": "subtitle",
	"ImageURL": "image URL",
	"Body":     "body",
	"Text":     "comment",
}

// validationMessage turns the first failed rule into a user-facing sentence.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Please check the form and try again."
	}
	fe := errs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return "That does not look like a valid email address."
	case "url":
		return "The image URL must be a valid URL."
	case "max":
		return fmt.Sprintf("The %s field is too long.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}
