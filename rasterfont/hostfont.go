package rasterfont

// RegistrationHandle is the handle returned by a FontRegistrar when a
// FontResourceImage has been registered with the host font subsystem. It
// is released when the owning FontResource is resized or destroyed.
type RegistrationHandle interface {
	Release()
}

// GlyphHandle is a handle suitable for glyph selection, obtained from a
// FontRegistrar after a font resource has been registered.
type GlyphHandle interface {
	Release()
}

// GlyphDescriptor carries the attributes a FontRegistrar needs to select a
// glyph from a previously registered font resource, mirroring the
// historical LOGFONT fields used to select a raster font by face name.
type GlyphDescriptor struct {
	Height       int
	Width        int
	Charset      byte
	OutPrecision byte
	PitchFixed   bool
	FaceName     string
}

// FontRegistrar is the external font subsystem collaborator: it accepts a
// fully-built FontResourceImage buffer and, separately, a descriptor used
// to select a glyph from whatever it just registered. Neither method is
// expected to retain the byte slice passed to it.
type FontRegistrar interface {
	RegisterMemoryFont(data []byte) (RegistrationHandle, error)
	CreateGlyphFromDescriptor(GlyphDescriptor) (GlyphHandle, error)
}

// NullRegistrar is a FontRegistrar that always succeeds and returns
// no-op handles. It's useful for callers that only want the raw
// FontResourceImage bytes, and for tests that exercise FontResource
// without a real host.
type NullRegistrar struct{}

type nullHandle struct{}

func (nullHandle) Release() {}

// RegisterMemoryFont implements FontRegistrar.
func (NullRegistrar) RegisterMemoryFont([]byte) (RegistrationHandle, error) {
	return nullHandle{}, nil
}

// CreateGlyphFromDescriptor implements FontRegistrar.
func (NullRegistrar) CreateGlyphFromDescriptor(GlyphDescriptor) (GlyphHandle, error) {
	return nullHandle{}, nil
}
