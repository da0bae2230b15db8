package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Conflict            failure.ErrorCode = "Conflict"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Deals
	DealNotFound     failure.ErrorCode = "DealNotFound"
	InvalidDealID    failure.ErrorCode = "InvalidDealID"
	InvalidDeal      failure.ErrorCode = "InvalidDeal"
	InvalidAssetType failure.ErrorCode = "InvalidAssetType"
	InvalidPrice     failure.ErrorCode = "InvalidPrice"
	InvalidTier      failure.ErrorCode = "InvalidTier"

	// Buyers
	BuyerNotFound       failure.ErrorCode = "BuyerNotFound"
	InvalidBuyerID      failure.ErrorCode = "InvalidBuyerID"
	InvalidBuyer        failure.ErrorCode = "InvalidBuyer"
	InvalidBudgetRange  failure.ErrorCode = "InvalidBudgetRange"
	InvalidPaidTier     failure.ErrorCode = "InvalidPaidTier"
	BuyerEmailInUse     failure.ErrorCode = "BuyerEmailInUse"
	InvalidBillingEvent failure.ErrorCode = "InvalidBillingEvent"

	// Matches
	MatchNotFound      failure.ErrorCode = "MatchNotFound"
	MatchAlreadyClosed failure.ErrorCode = "MatchAlreadyClosed"
	DuplicateMatch     failure.ErrorCode = "DuplicateMatch"

	// Notifications
	DeliveryFailed     failure.ErrorCode = "DeliveryFailed"
	ChannelUnavailable failure.ErrorCode = "ChannelUnavailable"
	SweepInProgress    failure.ErrorCode = "SweepInProgress"
)
