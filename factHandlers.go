package main

import (
	"net/http"

	"bitbucket.org/ksar/surveillance_backend/models"
	"github.com/gin-gonic/gin"
)

func recordLoadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCouponLoad
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		load, err := models.RecordLoad(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, load)
	}
}

func recordExtractHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCouponExtract
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		extract, err := models.RecordExtract(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, extract)
	}
}
