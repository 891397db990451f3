package rules

// Schema keywords read by the rules.
const (
	kwRef                  = "$ref"
	kwType                 = "type"
	kwProperties           = "properties"
	kwAdditionalProperties = "additionalProperties"
	kwItems                = "items"
	kwRequired             = "required"
	kwPattern              = "pattern"
	kwFormat               = "format"
	kwDefault              = "default"
	kwMinimum              = "minimum"
	kwMaximum              = "maximum"
	kwExclusiveMinimum     = "exclusiveMinimum"
	kwExclusiveMaximum     = "exclusiveMaximum"
	kwMinItems             = "minItems"
	kwMaxItems             = "maxItems"
	kwMinLength            = "minLength"
	kwMaxLength            = "maxLength"
	kwIntegerDigits        = "integerDigits"
	kwFractionalDigits     = "fractionalDigits"
	kwMultipleOf           = "multipleOf"
	kwTitle                = "title"
	kwDescription          = "description"
	kwComment              = "$comment"
	kwEnum                 = "enum"
	kwGoName               = "goName"
	kwGoOptional           = "goOptional"
	kwGoType               = "goType"
	kwGoEnumNames          = "goEnumNames"
)

// JSON Schema type names.
const (
	typeString  = "string"
	typeInteger = "integer"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeObject  = "object"
	typeArray   = "array"
	typeNull    = "null"
)

// Formats with dedicated handling.
const (
	formatDateTime = "date-time"
	formatDate     = "date"
	formatTime     = "time"
	formatEmail    = "email"
	formatURI      = "uri"
)
