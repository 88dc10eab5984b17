package httpserver

import (
	"errors"
	"log"
	"net/http"

	subscriptionsvc "techmobile/internal/service/subscription"
	"github.com/gin-gonic/gin"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func subscribeHandler(svc subscribeService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}

		if _, err := svc.Subscribe(c.Request.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, subscriptionsvc.ErrEmailRequired):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			case errors.Is(err, subscriptionsvc.ErrAlreadySubscribed):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already subscribed"})
			default:
				logger.Printf("subscribe: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed to newsletter!"})
	}
}
