package i18n

var catalogs = map[string]map[string]string{
	LocaleFR: {
		"error.bad_request":              "Requête invalide",
		"error.internal":                 "Erreur interne, veuillez réessayer",
		"error.not_found":                "Ressource introuvable",
		"error.unauthorized":             "Veuillez vous connecter",
		"error.rate_limited":             "Trop de tentatives, réessayez dans %d secondes",
		"error.rate_limit_unavailable":   "Service temporairement indisponible",
		"error.api_unavailable":          "Le serveur ne répond pas, réessayez plus tard",
		"error.api_timeout":              "Le serveur a mis trop de temps à répondre",
		"error.session_unavailable":      "Session indisponible",
		"error.cart_line_invalid":        "Produit, couleur ou taille invalide",
		"error.cart_empty":               "Votre panier est vide",
		"error.product_not_found":        "Produit introuvable",
		"error.variant_not_found":        "Couleur indisponible pour ce produit",
		"error.promo_code_empty":         "Veuillez saisir un code promo",
		"error.login_required":           "Veuillez vous connecter pour continuer",
		"error.login_failed":             "Email ou mot de passe incorrect",
		"error.email_not_verified":       "Veuillez vérifier votre adresse email avant de commander",
		"error.shipping_invalid":         "Informations de livraison incomplètes",
		"error.order_failed":             "La commande n'a pas pu être créée",
		"promo.applied":                  "Code appliqué",
		"promo.login_required":           "Connectez-vous pour utiliser ce code",
		"promo.per_user_limit_reached":   "Vous avez déjà utilisé ce code",
		"promo.max_uses_reached":         "Ce code n'est plus disponible",
		"promo.invalid":                  "Code promo invalide",
		"promo.unavailable":              "Vérification impossible, réessayez plus tard",
		"checkout.free_shipping_reached": "Livraison offerte",
		"checkout.free_shipping_missing": "Plus que %s pour la livraison offerte",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request",
		"error.internal":                 "Internal error, please try again",
		"error.not_found":                "Resource not found",
		"error.unauthorized":             "Please sign in",
		"error.rate_limited":             "Too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable":   "Service temporarily unavailable",
		"error.api_unavailable":          "The server is not responding, try again later",
		"error.api_timeout":              "The server took too long to respond",
		"error.session_unavailable":      "Session unavailable",
		"error.cart_line_invalid":        "Invalid product, color or size",
		"error.cart_empty":               "Your cart is empty",
		"error.product_not_found":        "Product not found",
		"error.variant_not_found":        "Color not available for this product",
		"error.promo_code_empty":         "Please enter a promo code",
		"error.login_required":           "Please sign in to continue",
		"error.login_failed":             "Wrong email or password",
		"error.email_not_verified":       "Please verify your email before ordering",
		"error.shipping_invalid":         "Shipping information is incomplete",
		"error.order_failed":             "The order could not be created",
		"promo.applied":                  "Code applied",
		"promo.login_required":           "Sign in to use this code",
		"promo.per_user_limit_reached":   "You have already used this code",
		"promo.max_uses_reached":         "This code is no longer available",
		"promo.invalid":                  "Invalid promo code",
		"promo.unavailable":              "Could not check the code, try again later",
		"checkout.free_shipping_reached": "Free shipping",
		"checkout.free_shipping_missing": "%s more for free shipping",
	},
}
