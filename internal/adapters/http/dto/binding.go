package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindingFor picks the decoder for the request body. Form posts from the
// recharge page are accepted alongside JSON.
func bindingFor(c *gin.Context) binding.Binding {
	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		return binding.Form
	case binding.MIMEMultipartPOSTForm:
		return binding.FormMultipart
	default:
		return binding.JSON
	}
}
