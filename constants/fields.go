package constants

// Field names used across extraction results, the aggregate score, the
// quality report, and the output schema. Store these exact strings.
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldPrimaryEmail   = "primary_email"
	FieldSecondaryEmail = "secondary_email"
	FieldPhone          = "phone"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZip            = "zip"
	FieldWorkAuth       = "work_authorization"
	FieldTaxTerm        = "tax_term"
	FieldDesignation    = "designation"
	FieldExperience     = "experience"
	FieldSkills         = "skills"
	FieldEducation      = "education"
	FieldCertifications = "certifications"
	FieldResumeLink     = "resume_link"
)

// MethodNone tags an ExtractedValue that carries no value. The invariant is
// confidence == 0 ⇔ method == MethodNone ⇔ value empty.
const MethodNone = "none"

// Extraction method tags.
const (
	MethodIntroPattern   = "intro_pattern"
	MethodEntityLookup   = "entity_lookup"
	MethodRegex          = "regex"
	MethodAddressPattern = "address_pattern"
	MethodZipDatabase    = "zip_database"
	MethodCityDatabase   = "city_database"
	MethodFilename       = "filename"
	MethodSection        = "section_extraction"
	MethodSummary        = "summary_extraction"
	MethodMultiMethod    = "multi_method"
	MethodFilePath       = "file_path"
	MethodExperience     = "regex_total_experience_summary"
)
