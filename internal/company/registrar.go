package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/config"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/graph"
	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

const duplicateCheckQuery = `MATCH (u:UserCompany {companyName: $companyName})
RETURN u.companyName AS companyName`

const createCompanyQuery = `CREATE (u:UserCompany {
    nodeId: $nodeId,
    companyName: $companyName,
    industryDescription: $industry,
    location: $location,
    revenue: $revenue,
    employeeCount: $employees,
    debtAmount: $debt,
    variableRateDebt: $variableDebt,
    exportAmount: $exportAmount,
    createdAt: datetime()
})
RETURN u.nodeId AS nodeId`

// Registrar registers user companies in the knowledge graph and wires
// the bootstrap relationships that the risk analysis walks.
type Registrar struct {
	store      graph.Client
	extractor  *Extractor
	thresholds config.AnalysisConfig
	logger     *slog.Logger
	clock      clockwork.Clock
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*Registrar)

// WithRegistrarLogger sets the logger.
func WithRegistrarLogger(logger *slog.Logger) RegistrarOption {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistrarClock injects a clock, used for node ID generation.
func WithRegistrarClock(clock clockwork.Clock) RegistrarOption {
	return func(r *Registrar) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRegistrar returns a Registrar using the given store and extractor.
func NewRegistrar(store graph.Client, extractor *Extractor, thresholds config.AnalysisConfig, options ...RegistrarOption) *Registrar {
	r := &Registrar{
		store:      store,
		extractor:  extractor,
		thresholds: thresholds,
		logger:     slog.Default(),
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register extracts a company profile from the text, creates the
// UserCompany node and bootstraps its relationships. Registration of a
// name that already exists is reported, not treated as an error.
func (r *Registrar) Register(ctx context.Context, text string) (RegistrationResult, error) {
	profile, err := r.extractor.Extract(ctx, text)
	if err != nil {
		return RegistrationResult{}, err
	}
	return r.RegisterProfile(ctx, profile)
}

// RegisterProfile registers an already-extracted profile.
func (r *Registrar) RegisterProfile(ctx context.Context, profile Profile) (RegistrationResult, error) {
	existing, err := r.store.Query(ctx, duplicateCheckQuery, map[string]any{
		"companyName": profile.CompanyName,
	})
	if err != nil {
		return RegistrationResult{}, types.WrapError(types.COMPANY_REGISTRATION_FAILED,
			"duplicate check failed", err)
	}
	if !existing.Empty() {
		r.logger.Info("company already registered", "company", profile.CompanyName)
		return RegistrationResult{
			CompanyName:       profile.CompanyName,
			AlreadyRegistered: true,
		}, nil
	}

	now := r.clock.Now()
	nodeID := fmt.Sprintf("%s_%d", profile.CompanyName, now.UnixMilli())

	_, err = r.store.Write(ctx, createCompanyQuery, map[string]any{
		"nodeId":       nodeID,
		"companyName":  profile.CompanyName,
		"industry":     profile.Industry,
		"location":     profile.Location,
		"revenue":      profile.Revenue,
		"employees":    profile.Employees,
		"debt":         profile.Debt,
		"variableDebt": profile.VariableRateDebt(),
		"exportAmount": profile.ExportAmount(),
	})
	if err != nil {
		return RegistrationResult{}, types.WrapError(types.COMPANY_REGISTRATION_FAILED,
			"company node creation failed", err)
	}

	created := r.createRelationships(ctx, profile)
	r.logger.Info("company registered",
		"company", profile.CompanyName,
		"node_id", nodeID,
		"relationships", created)

	return RegistrationResult{
		NodeID:               nodeID,
		CompanyName:          profile.CompanyName,
		RelationshipsCreated: created,
		RegisteredAt:         now,
	}, nil
}

// createRelationships wires the new company to macro indicators, KB
// products, policies, reference companies and news. Individual failures
// are logged and skipped so a partial bootstrap still yields a usable
// graph.
func (r *Registrar) createRelationships(ctx context.Context, profile Profile) int {
	total := 0
	for _, bootstrap := range bootstrapRelationships(profile, r.thresholds) {
		result, err := r.store.Write(ctx, bootstrap.query, bootstrap.params)
		if err != nil {
			r.logger.Warn("relationship bootstrap failed",
				"company", profile.CompanyName,
				"relationship", bootstrap.name,
				"error", err)
			continue
		}
		created := createdCount(result)
		r.logger.Debug("relationship bootstrap",
			"relationship", bootstrap.name, "created", created)
		total += created
	}
	return total
}

func createdCount(result graph.QueryResult) int {
	if len(result.Records) == 0 {
		return 0
	}
	switch v := result.Records[0]["created"].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
