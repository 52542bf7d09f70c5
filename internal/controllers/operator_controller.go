package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"operadoras/internal/dataset"
	"operadoras/internal/search"
)

// ErrDataUnavailable is returned to clients when the dataset did not load.
const ErrDataUnavailable = "Dados não carregados"

const homePage = `
<h1>Servidor Operadoras ANS</h1>
<p>Endpoints disponíveis:</p>
<ul>
    <li><a href="/api/buscar?q=saude">/api/buscar?q=termo</a> - Busca operadoras</li>
    <li><a href="/api/health">/api/health</a> - Verificar status do servidor</li>
</ul>
`

type OperatorController struct {
	Engine *search.Engine
}

// SearchResponse is the body of GET /api/buscar.
type SearchResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Results []dataset.Record `json:"results"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Results []string `json:"results"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status     string   `json:"status"`
	DataLoaded bool     `json:"data_loaded"`
	Columns    []string `json:"columns"`
	RowCount   int      `json:"row_count"`
}

// NewErrorResponse builds the failure envelope shared by every endpoint.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg, Results: []string{}}
}

// Home lists the available endpoints
func (oc *OperatorController) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}

// Search returns operators whose name, trade name, CNPJ, city or state
// contains the q parameter
func (oc *OperatorController) Search(c *gin.Context) {
	if !oc.Engine.Loaded() {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(ErrDataUnavailable))
		return
	}

	res := oc.Engine.Search(c.Query("q"))

	c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Count:   res.Count,
		Results: res.Matches,
	})
}

// Health reports whether the dataset is loaded and what it holds
func (oc *OperatorController) Health(c *gin.Context) {
	loaded := oc.Engine.Loaded()

	resp := HealthResponse{
		Status:     "no_data",
		DataLoaded: loaded,
		Columns:    []string{},
	}
	if loaded {
		resp.Status = "healthy"
		resp.Columns = oc.Engine.Columns()
		resp.RowCount = oc.Engine.RowCount()
	}

	c.JSON(http.StatusOK, resp)
}
