package siteControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/checkout"
	"github.com/pastrieswithlove/bakery-api/models"
)

// GET /site/settings
func GetPublicSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings := models.LoadSettings(db)
		c.JSON(http.StatusOK, gin.H{
			"business_name":        settings.BusinessName,
			"address":              settings.Address,
			"email":                settings.Email,
			"phone":                settings.Phone,
			"hero_headline":        settings.HeroHeadline,
			"hero_subheadline":     settings.HeroSubheadline,
			"about_title":          settings.AboutTitle,
			"about_description":    settings.AboutDescription,
			"opening_hours":        settings.OpeningHours,
			"minimum_order_notice": settings.MinimumOrderNotice,
		})
	}
}

// PUT /admin/site/settings
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SiteSettings
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var settings models.SiteSettings
		err := db.First(&settings).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
				return
			}
			settings = models.DefaultSettings()
		}

		// Single row: always write back to the existing id.
		input.ID = settings.ID
		if err := db.Save(&input).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, input)
	}
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /contact
func SubmitContact(db *gorm.DB, mailer checkout.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		message := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}
		if err := db.Create(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		// Notify staff; a mail failure never fails the submission.
		if mailer != nil {
			settings := models.LoadSettings(db)
			if settings.Email != "" {
				body := "From: " + input.Name + " (" + input.Email + ")\n\n" + input.Message
				if err := mailer.Send(settings.Email, "Contact Form: "+input.Subject, body); err != nil {
					log.Printf("⚠️ Contact notification failed: %v", err)
				}
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Your message has been sent successfully! We will get back to you soon.",
		})
	}
}

type SubscribeInput struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// POST /newsletter/subscribe
func SubscribeNewsletter(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubscribeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address."})
			return
		}

		var subscriber models.NewsletterSubscriber
		err := db.Where("email = ?", input.Email).First(&subscriber).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
				return
			}
			subscriber = models.NewsletterSubscriber{
				Email:     input.Email,
				FirstName: input.FirstName,
				LastName:  input.LastName,
				IsActive:  true,
			}
			if err := db.Create(&subscriber).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed to our newsletter!"})
			return
		}

		if subscriber.IsActive {
			c.JSON(http.StatusOK, gin.H{"message": "You are already subscribed to our newsletter."})
			return
		}

		subscriber.IsActive = true
		if err := db.Save(&subscriber).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Welcome back! You have been resubscribed to our newsletter."})
	}
}
