package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type server struct {
	controller controller
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.POST("/validate", validateBody, s.Validate)
	r.GET("/tasks", s.ListTasks)
}

func (s server) ListTasks(c *gin.Context) {
	c.JSON(200, s.controller.ListTasks())
}

func (s server) Validate(c *gin.Context) {
	var req validateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		handleError(c, NewHttpError(400, errors.New("invalid request body - must be valid json")))
		return
	}

	report, err := s.controller.Validate(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(200, report)
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else if _, err := c.Request.Body.Read(nil); err == io.EOF {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else {
		c.Next()
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, 500, errors.New("abort called on nil error"))
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, 500, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	switch {
	case code <= 500:
		c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
		})
		c.Abort()
	default:
		_ = c.AbortWithError(code, err)
	}
}
