package mls

import "github.com/c360studio/semstreams/vocabulary"

// Resource predicates shared by every node in the graph.
const (
	// ResourceType links a node to its class.
	ResourceType = "rdf.resource.type"

	// ResourceLabel is the human-readable label of a node.
	ResourceLabel = "rdfs.resource.label"
)

// Run predicates.
const (
	// RunImplements links a run or implementation to the algorithm it realizes.
	RunImplements = "mls.run.implements"

	// RunExecutes links a run to the implementation it executed.
	RunExecutes = "mls.run.executes"

	// RunHasInput links a run to its hyperparameter settings.
	RunHasInput = "mls.run.input"

	// RunHasOutput links a run to its model evaluations.
	RunHasOutput = "mls.run.output"
)

// Value predicates for settings and evaluations.
const (
	// ValueHasValue is the typed value of a setting or evaluation.
	ValueHasValue = "mls.value.literal"

	// ValueSpecifiedBy links a setting to its hyperparameter or an evaluation to its measure.
	ValueSpecifiedBy = "mls.value.specified_by"

	// ImplementationHyperParameter links an implementation to a hyperparameter it declares.
	ImplementationHyperParameter = "mls.implementation.hyper_parameter"
)

// Annotation predicates.
const (
	// AnnotationBody links an annotation to the metadata document it carries.
	AnnotationBody = "oa.annotation.body"

	// AnnotationTarget links an annotation to the activity it describes.
	AnnotationTarget = "oa.annotation.target"

	// AnnotationCreator names the component that produced the annotation.
	AnnotationCreator = "oa.annotation.creator"
)

// Provenance predicates.
const (
	// UsageQualified links an activity to a qualified usage.
	UsageQualified = "prov.usage.qualified"

	// UsageEntity links a usage to the entity that was used.
	UsageEntity = "prov.usage.entity"

	// EntityLocation is the project-relative location of an entity.
	EntityLocation = "prov.entity.location"
)

func register(predicate, description, dataType, iri string) {
	vocabulary.Register(predicate,
		vocabulary.WithDescription(description),
		vocabulary.WithDataType(dataType),
		vocabulary.WithIRI(iri))
}

// PredicateForIRI returns the dotted predicate registered for a standard IRI.
func PredicateForIRI(iri string) (string, bool) {
	p := vocabulary.LookupByIRI(iri)
	return p, p != ""
}

// IRIForPredicate returns the standard IRI of a registered predicate. Unregistered
// predicates are assumed to already be IRIs and are returned unchanged.
func IRIForPredicate(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return predicate
}

func init() {
	register(ResourceType, "Class of the resource", "entity_id", PropType)
	register(ResourceLabel, "Human-readable label", "string", PropLabel)

	register(RunImplements, "Algorithm realized by a run or implementation", "entity_id", PropImplements)
	register(RunExecutes, "Implementation executed by a run", "entity_id", PropExecutes)
	register(RunHasInput, "Hyperparameter setting consumed by a run", "entity_id", PropHasInput)
	register(RunHasOutput, "Model evaluation produced by a run", "entity_id", PropHasOutput)

	register(ValueHasValue, "Typed value of a setting or evaluation", "literal", PropHasValue)
	register(ValueSpecifiedBy, "Hyperparameter or evaluation measure a value is specified by", "entity_id", PropSpecifiedBy)
	register(ImplementationHyperParameter, "Hyperparameter declared by an implementation", "entity_id", PropHasHyperParameter)

	register(AnnotationBody, "Metadata document carried by an annotation", "entity_id", PropHasBody)
	register(AnnotationTarget, "Activity an annotation describes", "entity_id", PropHasTarget)
	register(AnnotationCreator, "Producer of the annotation", "string", PropCreator)

	register(UsageQualified, "Qualified usage of an entity by an activity", "entity_id", PropQualifiedUsage)
	register(UsageEntity, "Entity consumed through a usage", "entity_id", PropEntity)
	register(EntityLocation, "Project-relative location of an entity", "string", PropAtLocation)
}
