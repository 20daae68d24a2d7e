package field

// SemanticType is the closed set of semantic categories a control can be
// classified as. Exactly one is assigned per control; TypeFreeText is the
// universal fallback.
type SemanticType string

const (
	TypeEmail     SemanticType = "email"
	TypePhone     SemanticType = "phone"
	TypeFirstName SemanticType = "firstName"
	TypeLastName  SemanticType = "lastName"
	TypeName      SemanticType = "name"
	TypeAddress   SemanticType = "address"
	TypeCity      SemanticType = "city"
	TypeState     SemanticType = "state"
	TypeZip       SemanticType = "zip"
	TypeCountry   SemanticType = "country"
	TypeCompany   SemanticType = "company"
	TypeTitle     SemanticType = "title"
	TypeWebsite   SemanticType = "website"
	TypeMessage   SemanticType = "message"
	TypeImage     SemanticType = "image"
	TypeDate      SemanticType = "date"
	TypeNumber    SemanticType = "number"
	TypeFreeText  SemanticType = "text"
)
