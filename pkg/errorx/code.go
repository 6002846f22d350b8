package errorx

type Code int

const (
	// Common codes
	BadRequest      Code = 100001
	NotFound        Code = 100004
	Internal        Code = 100007
	InvalidArgument Code = 100012

	// Entity codes
	MalformedEntity Code = 500001
)
