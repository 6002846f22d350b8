package model

type OverwriteData struct {
	Type  string
	Allow uint64
	Deny  uint64
}

// DecodeOverwriteData decodes a permission overwrite. Overwrites are always
// sent whole, so absent masks are zero. The type is kept as received; the
// numeric form arrives as "0" or "1".
func DecodeOverwriteData(data map[string]any) (OverwriteData, error) {
	d := newFieldDecoder(data)
	overwrite := OverwriteData{
		Type:  field[string](d, "type").OrElse(""),
		Allow: field[uint64](d, "allow").OrElse(0),
		Deny:  field[uint64](d, "deny").OrElse(0),
	}
	return overwrite, d.err
}
