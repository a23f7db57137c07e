package rcnet

import "github.com/matzehuels/memlayout/pkg/convert"

const (
	// FileExtension is the conventional extension of container files.
	FileExtension = ".mlp"

	// DataFileName is the name of the single archive entry.
	DataFileName = "Data.xml"

	// FileVersion is the document version written by this build.
	FileVersion = 0x00010001

	// FileVersionCriticalMask selects the part of the version that must not
	// exceed FileVersion for a file to be readable.
	FileVersionCriticalMask = 0xFFFF0000

	// SerializationClassName names the synthetic class that carries the
	// nodes of an ad-hoc export.
	SerializationClassName = "__Serialization_Class__"
)

const (
	elemRoot       = "memlayout"
	elemClasses    = "classes"
	elemClass      = "class"
	elemNode       = "node"
	elemMethod     = "method"
	elemEnums      = "enums"
	elemEnum       = "enum"
	elemItem       = "item"
	elemCustomData = "custom_data"

	attrVersion   = "version"
	attrPlatform  = "platform"
	attrUUID      = "uuid"
	attrName      = "name"
	attrComment   = "comment"
	attrHidden    = "hidden"
	attrAddress   = "address"
	attrType      = "type"
	attrReference = "reference"
	attrCount     = "count"
	attrLength    = "length"
	attrBits      = "bits"
	attrSignature = "signature"
	attrFlags     = "flags"
	attrSize      = "size"
	attrValue     = "value"
)

// Options configures reading and writing.
type Options struct {
	// Converters resolves node types. Nil means the built-in table only.
	Converters *convert.Registry

	// Logger receives diagnostics about skipped nodes. Nil discards them.
	Logger convert.Logger

	// Platform is the platform a reader expects; a mismatch is logged as a
	// warning. WriteNodes records it in the document as is. Write always
	// records the project's own platform.
	Platform string
}

func (o Options) withDefaults() Options {
	if o.Converters == nil {
		o.Converters = convert.New()
	}
	if o.Logger == nil {
		o.Logger = convert.Discard()
	}
	return o
}
