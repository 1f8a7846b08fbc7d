package routes

import (
	"net/http"
	"time"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/jwt"
	"vehicle-access-control/internal/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// Short-lived visitor gate passes. The pass token is a signed claim for
// one visitor id; gate tablets scan the QR rendering of the verify URL.

func PassRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/visitor/:id/pass", guard("visitor", "read"), visitorPass)
	r.GET("/visitor/:id/pass.png", guard("visitor", "read"), visitorPassPNG)
	r.GET("/pass/verify/:token", guard("visitor", "read"), verifyPass)
}

func passToken(c *gin.Context) (int64, string, bool) {
	id, ok := idParam(c)
	if !ok {
		return 0, "", false
	}

	// The visitor must exist before a pass is signed for it.
	if _, err := Storage(c).GetVisitor(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "Visitor", id)
		return 0, "", false
	}

	token, err := jwt.GenerateJWT(jwt.NewPassClaim(id))
	if err != nil {
		AbortWithError(c, err)
		return 0, "", false
	}
	return id, token, true
}

// JSON endpoint for pass data (client-side QR generation)
func visitorPass(c *gin.Context) {
	id, token, ok := passToken(c)
	if !ok {
		return
	}

	url := utils.UrlFor(c, "/pass/verify/"+token)
	expiresAt := time.Now().Add(time.Duration(config.Cfg.Pass.TokenTTL) * time.Second)

	c.JSON(http.StatusOK, gin.H{
		"visitor_id": id,
		"token":      token,
		"url":        url,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

func visitorPassPNG(c *gin.Context) {
	_, token, ok := passToken(c)
	if !ok {
		return
	}

	url := utils.UrlFor(c, "/pass/verify/"+token)

	// We could cache the QR code, but it takes milliseconds to generate
	qr, err := qrcode.Encode(url, qrcode.Medium, config.QR_IMAGE_SIZE)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", qr)
}

// verifyPass checks a scanned pass token and returns the visitor record.
func verifyPass(c *gin.Context) {
	claims, err := jwt.DecodePassJWT(c.Param("token"))
	if err != nil {
		AbortWithError(c, jwt.ErrNonValidToken)
		return
	}

	visitor, err := Storage(c).GetVisitor(c.Request.Context(), claims.VisitorID)
	if err != nil {
		abortStorageError(c, err, "Visitor", claims.VisitorID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"visitor": visitor,
	})
}
