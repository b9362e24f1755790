package mls

// Namespace IRIs bound to the prefixes the report queries depend on.
const (
	NamespaceMLS     = "http://www.w3.org/ns/mls#"
	NamespaceOA      = "http://www.w3.org/ns/oa#"
	NamespaceXSD     = "http://www.w3.org/2001/XMLSchema#"
	NamespaceProv    = "http://www.w3.org/ns/prov#"
	NamespaceRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceSchema  = "http://schema.org/"
	NamespaceDCTerms = "http://purl.org/dc/terms/"
	NamespaceFOAF    = "http://xmlns.com/foaf/0.1/"
)

// Class IRIs.
const (
	// ClassRun is one execution of an implementation.
	ClassRun = NamespaceMLS + "Run"

	// ClassImplementation is an executable realization of an algorithm.
	ClassImplementation = NamespaceMLS + "Implementation"

	// ClassAlgorithm is the model type a run implements.
	ClassAlgorithm = NamespaceMLS + "Algorithm"

	// ClassHyperParameter is a named configuration knob of an implementation.
	ClassHyperParameter = NamespaceMLS + "HyperParameter"

	// ClassHyperParameterSetting is a value given to a hyperparameter for one run.
	ClassHyperParameterSetting = NamespaceMLS + "HyperParameterSetting"

	// ClassModelEvaluation is one measured result of a run.
	ClassModelEvaluation = NamespaceMLS + "ModelEvaluation"

	// ClassEvaluationMeasure is the metric a model evaluation is specified by.
	ClassEvaluationMeasure = NamespaceMLS + "EvaluationMeasure"

	// ClassAnnotation is the Web Annotation wrapper binding metadata to an activity.
	ClassAnnotation = NamespaceOA + "Annotation"

	// ClassActivity is a PROV activity, the host engine's notion of a run.
	ClassActivity = NamespaceProv + "Activity"

	// ClassUsage is a qualified PROV usage of an entity by an activity.
	ClassUsage = NamespaceProv + "Usage"

	// ClassEntity is a PROV entity such as an input dataset.
	ClassEntity = NamespaceProv + "Entity"
)

// Property IRIs.
const (
	PropType              = NamespaceRDF + "type"
	PropLabel             = NamespaceRDFS + "label"
	PropImplements        = NamespaceMLS + "implements"
	PropExecutes          = NamespaceMLS + "executes"
	PropHasInput          = NamespaceMLS + "hasInput"
	PropHasOutput         = NamespaceMLS + "hasOutput"
	PropHasValue          = NamespaceMLS + "hasValue"
	PropSpecifiedBy       = NamespaceMLS + "specifiedBy"
	PropHasHyperParameter = NamespaceMLS + "hasHyperParameter"
	PropHasBody           = NamespaceOA + "hasBody"
	PropHasTarget         = NamespaceOA + "hasTarget"
	PropQualifiedUsage    = NamespaceProv + "qualifiedUsage"
	PropEntity            = NamespaceProv + "entity"
	PropAtLocation        = NamespaceProv + "atLocation"
	PropIdentifier        = NamespaceSchema + "identifier"
	PropTitle             = NamespaceDCTerms + "title"
	PropCreator           = NamespaceDCTerms + "creator"
	PropHasVersion        = NamespaceDCTerms + "hasVersion"
)

// Datatype IRIs the literal decoder distinguishes.
const (
	XSDString             = NamespaceXSD + "string"
	XSDBoolean            = NamespaceXSD + "boolean"
	XSDInteger            = NamespaceXSD + "integer"
	XSDInt                = NamespaceXSD + "int"
	XSDLong               = NamespaceXSD + "long"
	XSDShort              = NamespaceXSD + "short"
	XSDByte               = NamespaceXSD + "byte"
	XSDNonNegativeInteger = NamespaceXSD + "nonNegativeInteger"
	XSDPositiveInteger    = NamespaceXSD + "positiveInteger"
	XSDNegativeInteger    = NamespaceXSD + "negativeInteger"
	XSDNonPositiveInteger = NamespaceXSD + "nonPositiveInteger"
	XSDUnsignedInt        = NamespaceXSD + "unsignedInt"
	XSDUnsignedLong       = NamespaceXSD + "unsignedLong"
	XSDDecimal            = NamespaceXSD + "decimal"
	XSDDouble             = NamespaceXSD + "double"
	XSDFloat              = NamespaceXSD + "float"
	XSDDate               = NamespaceXSD + "date"
	XSDDateTime           = NamespaceXSD + "dateTime"
)

var numericDatatypes = map[string]bool{
	XSDInteger:            true,
	XSDInt:                true,
	XSDLong:               true,
	XSDShort:              true,
	XSDByte:               true,
	XSDNonNegativeInteger: true,
	XSDPositiveInteger:    true,
	XSDNegativeInteger:    true,
	XSDNonPositiveInteger: true,
	XSDUnsignedInt:        true,
	XSDUnsignedLong:       true,
	XSDDecimal:            true,
	XSDDouble:             true,
	XSDFloat:              true,
}

// IsNumericDatatype reports whether the datatype IRI is one of the XSD numeric types.
func IsNumericDatatype(datatype string) bool {
	return numericDatatypes[datatype]
}
