package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func BadRequestErrorHandler(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
}

func NotFoundErrorHandler(c *gin.Context, err error) {
	c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
}

func InternalErrorHandler(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: "internal server error"})
}
