package v1

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/bionetlab/stringviz/server/internal/errors"
	"github.com/bionetlab/stringviz/server/internal/observability"
	"github.com/bionetlab/stringviz/server/service/network"
	"github.com/bionetlab/stringviz/store"
)

const defaultMaxNodes = 300

// ResolveRequest carries identifier queries either pre-split or as free text.
type ResolveRequest struct {
	Queries []string `json:"queries"`
	Text    string   `json:"text"`
	TaxonID string   `json:"taxonId"`
}

// ResolveResponse lists one resolution row per non-empty input query.
type ResolveResponse struct {
	Items []*network.ResolvedIdentifier `json:"items"`
}

// NetworkRequest describes one graph build.
type NetworkRequest struct {
	Queries []string `json:"queries"`
	Text    string   `json:"text"`
	TaxonID string   `json:"taxonId"`
	// Variant is "functional" (default) or "physical".
	Variant string `json:"variant"`
	// Threshold is the user-facing confidence cutoff in [0, 1]; it maps onto
	// the stored integer scores as round(threshold*1000).
	Threshold float64 `json:"threshold"`
	// Mode is "induced" (default) or "expand".
	Mode     string `json:"mode"`
	MaxNodes int    `json:"maxNodes"`
}

// NetworkResponse carries the resolution rows plus the export tables.
type NetworkResponse struct {
	Resolution []*network.ResolvedIdentifier `json:"resolution"`
	Nodes      []network.NodeRow             `json:"nodes"`
	Edges      []network.EdgeRow             `json:"edges"`
}

func (s *APIV1Service) healthz(c echo.Context) error {
	ctx := c.Request().Context()
	if ok, err := s.Store.IsInitialized(ctx); err != nil || !ok {
		status := http.StatusServiceUnavailable
		if err != nil {
			return echo.NewHTTPError(status, "store unreachable")
		}
		return echo.NewHTTPError(status, "store not initialized")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *APIV1Service) status(c echo.Context) error {
	return c.JSON(http.StatusOK, observability.GlobalMetrics().Snapshot())
}

func (s *APIV1Service) resolveIdentifiers(c echo.Context) error {
	reqCtx := observability.NewRequestContext(s.logger, "resolve", c.RealIP())
	observability.GlobalMetrics().RecordRequest("resolve")

	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		observability.GlobalMetrics().RecordFailure("resolve")
		return s.requestError(apierrors.InvalidArgument("malformed request body"))
	}

	queries := req.Queries
	if len(queries) == 0 {
		queries = network.ParseQueries(req.Text)
	}

	var taxonID *string
	if req.TaxonID != "" {
		taxonID = &req.TaxonID
	}

	ctx := c.Request().Context()
	items, err := s.NetworkService.Resolver().Resolve(ctx, queries, taxonID)
	if err != nil {
		observability.GlobalMetrics().RecordFailure("resolve")
		reqCtx.Error("identifier resolution failed", err)
		return s.requestError(apierrors.StoreUnavailable(err))
	}

	observability.GlobalMetrics().RecordDuration("resolve", reqCtx.Duration())
	reqCtx.Info("identifiers resolved",
		slog.Int(observability.LogFieldQueryCount, len(queries)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)
	return c.JSON(http.StatusOK, &ResolveResponse{Items: items})
}

func (s *APIV1Service) buildNetwork(c echo.Context) error {
	graph, reqCtx, err := s.runBuild(c, "network")
	if err != nil {
		return err
	}

	resp := &NetworkResponse{
		Resolution: graph.Resolution,
		Nodes:      graph.NodeTable(),
		Edges:      graph.EdgeTable(),
	}
	observability.GlobalMetrics().RecordDuration("network", reqCtx.Duration())
	reqCtx.Info("network built",
		slog.Int(observability.LogFieldNodeCount, len(resp.Nodes)),
		slog.Int(observability.LogFieldEdgeCount, len(resp.Edges)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) exportNetwork(c echo.Context) error {
	table := c.QueryParam("table")
	if table == "" {
		table = "nodes"
	}
	if table != "nodes" && table != "edges" {
		return s.requestError(apierrors.InvalidArgument(fmt.Sprintf("unknown table %q", table)))
	}

	format := network.Format(c.QueryParam("format"))
	if format == "" {
		format = network.FormatTSV
	}
	if _, err := format.Delimiter(); err != nil {
		return s.requestError(apierrors.InvalidArgument(err.Error()))
	}

	graph, reqCtx, err := s.runBuild(c, "export")
	if err != nil {
		return err
	}

	contentType := "text/tab-separated-values"
	if format == network.FormatCSV {
		contentType = "text/csv"
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.%s"`, table, format))
	c.Response().WriteHeader(http.StatusOK)

	if table == "nodes" {
		err = network.WriteNodeTable(c.Response(), graph.NodeTable(), format)
	} else {
		err = network.WriteEdgeTable(c.Response(), graph.EdgeTable(), format)
	}
	if err != nil {
		reqCtx.Error("table export failed", err)
		return err
	}

	observability.GlobalMetrics().RecordDuration("export", reqCtx.Duration())
	reqCtx.Info("table exported",
		slog.String("table", table),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
	)
	return nil
}

// runBuild parses and validates the build request, takes a build slot, and
// runs the pipeline. On error a response has already been written.
func (s *APIV1Service) runBuild(c echo.Context, operation string) (*network.Graph, *observability.RequestContext, error) {
	reqCtx := observability.NewRequestContext(s.logger, operation, c.RealIP())
	observability.GlobalMetrics().RecordRequest(operation)

	var req NetworkRequest
	if err := c.Bind(&req); err != nil {
		observability.GlobalMetrics().RecordFailure(operation)
		return nil, nil, s.requestError(apierrors.InvalidArgument("malformed request body"))
	}

	build, reqErr := s.toBuildRequest(&req)
	if reqErr != nil {
		observability.GlobalMetrics().RecordFailure(operation)
		return nil, nil, s.requestError(reqErr)
	}

	ctx := c.Request().Context()
	if err := s.buildSemaphore.Acquire(ctx, 1); err != nil {
		observability.GlobalMetrics().RecordFailure(operation)
		return nil, nil, s.requestError(apierrors.ContextCanceled(err))
	}
	defer s.buildSemaphore.Release(1)

	graph, err := s.NetworkService.BuildGraph(ctx, build)
	if err != nil {
		observability.GlobalMetrics().RecordFailure(operation)
		reqCtx.Error("graph build failed", err,
			slog.String(observability.LogFieldVariant, string(build.Variant)),
		)
		return nil, nil, s.requestError(apierrors.BuildFailed(err))
	}
	return graph, reqCtx, nil
}

func (s *APIV1Service) toBuildRequest(req *NetworkRequest) (*network.BuildRequest, *apierrors.RequestError) {
	queries := req.Queries
	if len(queries) == 0 {
		queries = network.ParseQueries(req.Text)
	}
	if len(queries) == 0 {
		return nil, apierrors.InvalidArgument("no queries supplied")
	}

	variant := store.Variant(req.Variant)
	if req.Variant == "" {
		variant = store.VariantFunctional
	}
	if _, err := variant.Table(); err != nil {
		return nil, apierrors.InvalidArgument(err.Error())
	}

	mode := network.Mode(req.Mode)
	if req.Mode == "" {
		mode = network.ModeInduced
	}
	if mode != network.ModeInduced && mode != network.ModeExpand {
		return nil, apierrors.InvalidArgument(fmt.Sprintf("unknown mode %q", req.Mode))
	}

	if req.Threshold < 0 || req.Threshold > 1 {
		return nil, apierrors.InvalidArgument("threshold must be within [0, 1]")
	}
	minScore := int(math.Round(req.Threshold * 1000))

	maxNodes := req.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}
	if ceiling := s.Profile.MaxNodesCeiling; ceiling > 0 && maxNodes > ceiling {
		maxNodes = ceiling
	}

	var taxonID *string
	if req.TaxonID != "" {
		taxonID = &req.TaxonID
	}

	return &network.BuildRequest{
		Queries:  queries,
		TaxonID:  taxonID,
		Variant:  variant,
		MinScore: minScore,
		Mode:     mode,
		MaxNodes: maxNodes,
	}, nil
}

// requestError converts a coded request error into an echo HTTP error so the
// returned value is always non-nil and handler chains stop on it.
func (s *APIV1Service) requestError(reqErr *apierrors.RequestError) error {
	return echo.NewHTTPError(reqErr.HTTPStatus(), map[string]string{
		"code":    string(reqErr.Code),
		"message": reqErr.Message,
	})
}
