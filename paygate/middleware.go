package paygate

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/encoding"
)

// PaymentContextKey is the gin context key the verified payment is stored
// under for handler access.
const PaymentContextKey = "x402_payment"

// Middleware returns a gin middleware that gates one route behind the given
// payment requirement. Requests without a valid, settled payment never reach
// the handler: the middleware answers 402 with the requirement, 400 for a
// header that cannot be decoded, and 503 when the facilitator is unreachable.
func Middleware(facilitator *FacilitatorClient, requirement mintgate.PaymentRequirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := slog.Default()

		req := requirement
		req.Resource = resourceURL(c)
		if req.Description == "" {
			req.Description = "Payment required for " + c.Request.URL.Path
		}

		paymentHeader := c.GetHeader("X-Payment")
		if paymentHeader == "" {
			logger.Info("no payment header provided", "path", c.Request.URL.Path)
			abortPaymentRequired(c, req)
			return
		}

		payment, err := encoding.DecodePayment(paymentHeader)
		if err != nil {
			logger.Warn("invalid payment header", "error", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"x402Version": 1,
				"error":       "Invalid payment header",
			})
			return
		}

		verifyResp, err := facilitator.Verify(c.Request.Context(), payment, req)
		if err != nil {
			logger.Error("facilitator verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"x402Version": 1,
				"error":       "Payment verification failed",
			})
			return
		}
		if !verifyResp.IsValid {
			logger.Warn("payment verification failed", "reason", verifyResp.InvalidReason)
			abortPaymentRequired(c, req)
			return
		}

		logger.Info("payment verified", "payer", verifyResp.Payer, "path", c.Request.URL.Path)

		settlementResp, err := facilitator.Settle(c.Request.Context(), payment, req)
		if err != nil {
			logger.Error("settlement failed", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"x402Version": 1,
				"error":       "Payment settlement failed",
			})
			return
		}
		if !settlementResp.Success {
			logger.Warn("settlement unsuccessful", "reason", settlementResp.ErrorReason)
			abortPaymentRequired(c, req)
			return
		}

		logger.Info("payment settled", "transaction", settlementResp.Transaction)

		if encoded, err := encoding.EncodeSettlement(*settlementResp); err == nil {
			c.Header("X-Payment-Response", encoded)
		} else {
			logger.Warn("failed to encode payment response header", "error", err)
		}

		c.Set(PaymentContextKey, verifyResp)
		c.Next()
	}
}

func resourceURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + c.Request.RequestURI
}

func abortPaymentRequired(c *gin.Context, requirement mintgate.PaymentRequirement) {
	c.AbortWithStatusJSON(http.StatusPaymentRequired, mintgate.PaymentRequirementsResponse{
		X402Version: 1,
		Error:       "Payment required",
		Accepts:     []mintgate.PaymentRequirement{requirement},
	})
}
