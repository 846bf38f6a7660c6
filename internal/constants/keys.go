package constants

const (
	KEY_APP_NAME       = "app"
	KEY_BODY           = "body"
	KEY_CACHE_KEY      = "cacheKey"
	KEY_CART           = "cart"
	KEY_CART_ITEM      = "cartItem"
	KEY_CART_RESPONSE  = "cartResponse"
	KEY_CONFIG         = "config"
	KEY_DB_URL         = "dbUrl"
	KEY_EMAIL          = "email"
	KEY_EVENT          = "event"
	KEY_HEADER         = "header"
	KEY_HOTEL          = "hotel"
	KEY_HAS_POINT      = "hasPoint"
	KEY_HOTEL_ID       = "hotelId"
	KEY_IS_SAFE        = "isSafe"
	KEY_ITEM_ID        = "itemId"
	KEY_ITEM_TYPE      = "itemType"
	KEY_JSON_CACHE     = "jsonCache"
	KEY_LATITUDE       = "latitude"
	KEY_LONGITUDE      = "longitude"
	KEY_ORDER_ID       = "orderId"
	KEY_PATH_VALUES    = "pathValues"
	KEY_PLACE_TYPE     = "placeType"
	KEY_PLACES_COUNT   = "placesCount"
	KEY_PROCESS        = "process"
	KEY_QUERY          = "query"
	KEY_QUEUE          = "queue"
	KEY_RADIUS         = "radius"
	KEY_REQUEST        = "request"
	KEY_REQUEST_BODY   = "requestBody"
	KEY_REQUEST_HEADER = "requestHeader"
	KEY_REQUEST_HOST   = "host"
	KEY_REQUEST_ID     = "requestId"
	KEY_REQUEST_IP     = "requesterIP"
	KEY_REQUEST_METHOD = "requestMethod"
	KEY_REQUEST_URI    = "requestURI"
	KEY_REQUEST_URL    = "requestURL"
	KEY_RISK_LEVEL     = "riskLevel"
	KEY_ROUTING_KEY    = "routingKey"
	KEY_SPAN_ID        = "spanId"
	KEY_TAG            = "tag"
	KEY_TOKEN          = "token"
	KEY_TRACE_ID       = "traceId"
	KEY_USER_ID        = "userId"
	KEY_VEHICLE        = "vehicle"
	KEY_VEHICLE_ID     = "vehicleId"
	KEY_ZONE           = "zone"
	KEY_ZONE_ID        = "zoneId"
	KEY_ZONES          = "zones"
	KEY_ZONES_COUNT    = "zonesCount"
	KEY_SEARCH_FILTER  = "searchFilter"
	KEY_PAGINATION     = "pagination"
)
