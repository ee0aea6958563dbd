package storefront

import (
	"errors"
	"net/http"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/auth"
	"github.com/savagerise/storefront/internal/cart"
	"github.com/savagerise/storefront/internal/catalog"
	"github.com/savagerise/storefront/internal/checkout"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/promo"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	if code, key, ok := remoteStatusRule(err); ok {
		respondError(c, code, key, nil)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// remoteStatusRule 远端非 2xx 状态码映射
func remoteStatusRule(err error) (int, string, bool) {
	switch apiclient.StatusOf(err) {
	case 0:
		return 0, "", false
	case http.StatusNotFound:
		return response.CodeNotFound, "error.not_found", true
	case http.StatusUnauthorized:
		return response.CodeUnauthorized, "error.unauthorized", true
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return response.CodeBadRequest, "error.bad_request", true
	default:
		return response.CodeBadGateway, "error.api_unavailable", true
	}
}

var remoteErrorRules = []mappedHandlerError{
	{target: apiclient.ErrTimeout, code: response.CodeGatewayTimeout, key: "error.api_timeout"},
	{target: apiclient.ErrNetwork, code: response.CodeServiceUnavailable, key: "error.api_unavailable"},
	{target: apiclient.ErrResponseInvalid, code: response.CodeBadGateway, key: "error.api_unavailable"},
}

var catalogErrorRules = concatMappedHandlerErrors(remoteErrorRules, []mappedHandlerError{
	{target: apiclient.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: catalog.ErrVariantNotFound, code: response.CodeBadRequest, key: "error.variant_not_found"},
})

var cartErrorRules = concatMappedHandlerErrors(catalogErrorRules, []mappedHandlerError{
	{target: cart.ErrInvalidLine, code: response.CodeBadRequest, key: "error.cart_line_invalid"},
})

var promoErrorRules = []mappedHandlerError{
	{target: promo.ErrEmptyCode, code: response.CodeBadRequest, key: "error.promo_code_empty"},
	{target: promo.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: promo.ErrClosed, code: response.CodeServiceUnavailable, key: "error.session_unavailable"},
}

var authErrorRules = concatMappedHandlerErrors(remoteErrorRules, []mappedHandlerError{
	{target: auth.ErrMissingCredentials, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: auth.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_failed"},
	{target: auth.ErrNotAuthenticated, code: response.CodeUnauthorized, key: "error.unauthorized"},
})

var checkoutErrorRules = concatMappedHandlerErrors(remoteErrorRules, []mappedHandlerError{
	{target: checkout.ErrLoginRequired, code: response.CodeUnauthorized, key: "error.login_required"},
	{target: checkout.ErrEmailNotVerified, code: response.CodeForbidden, key: "error.email_not_verified"},
	{target: checkout.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
})
