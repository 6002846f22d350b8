package errorx

var (
	ErrMissingID       = Error{MalformedEntity, "entity data does not contain an id"}
	ErrNotGuildChannel = Error{NotFound, "channel does not belong to a guild"}
)
