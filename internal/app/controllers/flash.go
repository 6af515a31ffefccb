package controllers

import (
	"github.com/gin-gonic/gin"
)

// flashCookie carries a one-shot message across a redirect, read and cleared
// by the next page load.
const flashCookie = "portal_flash"

// setFlash stores a transient message for the next request
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// popFlash reads and clears the transient message, if any
func popFlash(c *gin.Context) string {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return ""
	}

	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return value
}
