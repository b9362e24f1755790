package provenance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

// Graph layout the host engine writes to Neo4j.
const (
	// ResourceLabel marks IRI and blank nodes; the identifier is in the "iri" property.
	ResourceLabel = "Resource"

	// RelationType is the relationship type of every triple; the predicate IRI is in
	// the relationship's "iri" property.
	RelationType = "PREDICATE"
)

// Runner executes a Cypher query and returns a fully buffered result.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Neo4jRunner runs queries through the official driver.
type Neo4jRunner struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// NewNeo4jRunner creates a runner with basic authentication.
func NewNeo4jRunner(uri, username, password, database string) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Neo4jRunner{Driver: driver, Database: database}, nil
}

// Run executes the query with ExecuteQuery, which manages session and transaction.
func (r *Neo4jRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		r.Driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.Database),
	)
	if err != nil {
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	return result, nil
}

// Close closes the driver.
func (r *Neo4jRunner) Close(ctx context.Context) error {
	return r.Driver.Close(ctx)
}

// Neo4jExporter exports the provenance graph stored in a Neo4j database.
type Neo4jExporter struct {
	runner Runner
	logger *slog.Logger
}

// NewNeo4jExporter creates an exporter over runner.
func NewNeo4jExporter(runner Runner, logger *slog.Logger) *Neo4jExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Neo4jExporter{runner: runner, logger: logger}
}

// TriplesQuery builds the Cypher query returning every stored triple.
func TriplesQuery() (string, map[string]any, error) {
	return gocypher.NewQueryBuilder().
		Match(
			gocypher.N("s", ResourceLabel),
			gocypher.R("r", RelationType).To(),
			gocypher.N("o", ""),
		).
		Return("s", "r", "o").
		Build()
}

// Export reads every triple and assembles an expanded JSON-LD document. A database with
// no triples is treated as a graph that was never generated.
func (e *Neo4jExporter) Export(ctx context.Context, revision string) (*Document, error) {
	query, params, err := TriplesQuery()
	if err != nil {
		return nil, fmt.Errorf("build triples query: %w", err)
	}

	result, err := e.runner.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("export provenance graph: %w", err)
	}
	if result == nil || len(result.Records) == 0 {
		return nil, ErrGraphUnavailable
	}

	nodes := make(map[string]map[string]any)
	for i, record := range result.Records {
		subject, predicate, object, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		node, ok := nodes[subject]
		if !ok {
			node = map[string]any{"@id": subject}
			nodes[subject] = node
		}
		values, _ := node[predicate].([]any)
		node[predicate] = append(values, object)
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	graph := make([]any, 0, len(ids))
	for _, id := range ids {
		graph = append(graph, nodes[id])
	}

	if revision != "" && revision != "HEAD" {
		e.logger.Debug("Neo4j holds the current revision only", slog.String("requested", revision))
	}
	e.logger.Debug("Exported provenance graph",
		slog.Int("triples", len(result.Records)),
		slog.Int("subjects", len(ids)))

	return &Document{Revision: revision, Source: "neo4j", Data: graph}, nil
}

// decodeRecord maps one (s, r, o) record to a subject IRI, a predicate IRI and an
// expanded JSON-LD value object.
func decodeRecord(record *neo4j.Record) (string, string, map[string]any, error) {
	sv, _ := record.Get("s")
	s, ok := sv.(neo4j.Node)
	if !ok {
		return "", "", nil, fmt.Errorf("subject is %T, not a node", sv)
	}
	subject, _ := s.Props["iri"].(string)
	if subject == "" {
		return "", "", nil, fmt.Errorf("subject node %s has no iri", s.ElementId)
	}

	rv, _ := record.Get("r")
	r, ok := rv.(neo4j.Relationship)
	if !ok {
		return "", "", nil, fmt.Errorf("predicate is %T, not a relationship", rv)
	}
	predicate, _ := r.Props["iri"].(string)
	if predicate == "" {
		return "", "", nil, fmt.Errorf("relationship %s has no iri", r.ElementId)
	}

	ov, _ := record.Get("o")
	o, ok := ov.(neo4j.Node)
	if !ok {
		return "", "", nil, fmt.Errorf("object is %T, not a node", ov)
	}
	if iri, ok := o.Props["iri"].(string); ok && iri != "" {
		return subject, predicate, map[string]any{"@id": iri}, nil
	}

	value, ok := o.Props["value"]
	if !ok {
		return "", "", nil, fmt.Errorf("object node %s has neither iri nor value", o.ElementId)
	}
	object := map[string]any{"@value": fmt.Sprint(value)}
	if dt, ok := o.Props["datatype"].(string); ok && dt != "" {
		object["@type"] = dt
	} else if lang, ok := o.Props["language"].(string); ok && lang != "" {
		object["@language"] = lang
	}
	return subject, predicate, object, nil
}
