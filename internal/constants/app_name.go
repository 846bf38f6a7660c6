package constants

const (
	APP_USER_SERVICE         = "user-service"
	APP_NOTIFICATION_SERVICE = "notification-service"
	APP_CATALOG_SERVICE      = "catalog-service"
	APP_SAFETY_SERVICE       = "safety-service"
	APP_CART_SERVICE         = "cart-service"
	APP_MAIN_TOURISM         = "main tourism"
	AUDIENCE_USER            = "audience-user"
)
