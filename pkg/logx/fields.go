package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldAssetType       = "asset-type"
	FieldBuyerID         = "buyer-id"
	FieldChannel         = "channel"
	FieldCompositeScore  = "composite-score"
	FieldDealID          = "deal-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldMatchCount      = "match-count"
	FieldMatchStatus     = "match-status"
	FieldPaidTier        = "paid-tier"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTier            = "tier"
	FieldTopic           = "topic"
	FieldTraceID         = "trace-id"
)
