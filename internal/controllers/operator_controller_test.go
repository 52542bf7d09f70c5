package controllers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"operadoras/internal/config"
	"operadoras/internal/controllers"
	"operadoras/internal/dataset"
	"operadoras/internal/routes"
	"operadoras/internal/search"
	"operadoras/internal/testhelpers"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var columns = []string{"Razao_Social", "Nome_Fantasia", "CNPJ", "Cidade", "UF"}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

var _ = Describe("OperatorController", func() {
	var (
		cfg    *config.Config
		table  *dataset.Table
		router *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		var err error
		cfg, err = config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		table = dataset.NewTable(columns, [][]string{
			{"Saúde Boa", "SB", "123", "Rio", "RJ"},
			{"Outra", "", "0999", "SP", "SP"},
		})
	})

	JustBeforeEach(func() {
		router = routes.SetupRouter(search.NewEngine(table, cfg.MaxResults), cfg)
	})

	Describe("GET /", func() {
		It("lists the endpoints", func() {
			resp := get(router, "/")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Header().Get("Content-Type")).To(ContainSubstring("text/html"))

			doc, err := goquery.NewDocumentFromReader(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Find("h1").Text()).To(Equal("Servidor Operadoras ANS"))

			var links []string
			doc.Find("a").Each(func(_ int, s *goquery.Selection) {
				href, _ := s.Attr("href")
				links = append(links, href)
			})
			Expect(links).To(Equal([]string{"/api/buscar?q=saude", "/api/health"}))
		})
	})

	Describe("GET /api/buscar", func() {
		It("returns the matching operators", func() {
			resp := get(router, "/api/buscar?q=rj")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(MatchJSON(`{
				"success": true,
				"count": 1,
				"results": [
					{"Razao_Social": "Saúde Boa", "Nome_Fantasia": "SB", "CNPJ": "123", "Cidade": "Rio", "UF": "RJ"}
				]
			}`))
		})

		It("serializes missing values as empty strings and keeps CNPJ zeros", func() {
			resp := get(router, "/api/buscar?q=outra")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(MatchJSON(`{
				"success": true,
				"count": 1,
				"results": [
					{"Razao_Social": "Outra", "Nome_Fantasia": "", "CNPJ": "0999", "Cidade": "SP", "UF": "SP"}
				]
			}`))
		})

		It("does not fold accents", func() {
			resp := get(router, "/api/buscar?q=saude")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(MatchJSON(`{"success": true, "count": 0, "results": []}`))
		})

		It("returns no results without a query", func() {
			resp := get(router, "/api/buscar")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(MatchJSON(`{"success": true, "count": 0, "results": []}`))
		})

		Context("with more matches than the limit", func() {
			BeforeEach(func() {
				rows := make([][]string, 25)
				for i := range rows {
					rows[i] = []string{fmt.Sprintf("Operadora %02d", i), "", fmt.Sprintf("%014d", i), "Recife", "PE"}
				}
				table = dataset.NewTable(columns, rows)
			})

			It("returns the first matches and the full count", func() {
				resp := get(router, "/api/buscar?q=recife")
				Expect(resp.Code).To(Equal(http.StatusOK))

				var body struct {
					Success bool                `json:"success"`
					Count   int                 `json:"count"`
					Results []map[string]string `json:"results"`
				}
				Expect(json.Unmarshal(resp.Body.Bytes(), &body)).To(Succeed())
				Expect(body.Success).To(BeTrue())
				Expect(body.Count).To(Equal(25))
				Expect(body.Results).To(HaveLen(20))
				Expect(body.Results[0]["Razao_Social"]).To(Equal("Operadora 00"))
				Expect(body.Results[19]["Razao_Social"]).To(Equal("Operadora 19"))
			})
		})

		Context("when the dataset did not load", func() {
			BeforeEach(func() {
				table = dataset.NewTable(nil, nil)
			})

			DescribeTable("answers 503",
				func(target string) {
					resp := get(router, target)

					Expect(resp.Code).To(Equal(http.StatusServiceUnavailable))
					Expect(resp.Body.String()).To(MatchJSON(`{"success": false, "error": "Dados não carregados", "results": []}`))
					Expect(resp.Body.String()).To(ContainSubstring(controllers.ErrDataUnavailable))
				},
				Entry("with a query", "/api/buscar?q=x"),
				Entry("without a query", "/api/buscar"),
			)
		})

		Context("when the dataset came from a file", func() {
			BeforeEach(func() {
				table = dataset.Load(testhelpers.FixturePath("operadoras_latin1.csv"))
			})

			It("searches the decoded text", func() {
				resp := get(router, "/api/buscar?q=s%C3%A3o%20paulo")
				Expect(resp.Code).To(Equal(http.StatusOK))

				var body struct {
					Count int `json:"count"`
				}
				Expect(json.Unmarshal(resp.Body.Bytes(), &body)).To(Succeed())
				Expect(body.Count).To(Equal(1))
				Expect(resp.Body.String()).To(ContainSubstring(`"Nome_Fantasia":"Saúde Boa"`))
			})
		})
	})

	Describe("GET /api/health", func() {
		It("reports a loaded dataset", func() {
			resp := get(router, "/api/health")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Body.String()).To(MatchJSON(`{
				"status": "healthy",
				"data_loaded": true,
				"columns": ["Razao_Social", "Nome_Fantasia", "CNPJ", "Cidade", "UF"],
				"row_count": 2
			}`))
		})

		Context("without data", func() {
			BeforeEach(func() {
				table = dataset.NewTable([]string{"CNPJ"}, nil)
			})

			It("reports no_data", func() {
				resp := get(router, "/api/health")

				Expect(resp.Code).To(Equal(http.StatusOK))
				Expect(resp.Body.String()).To(MatchJSON(`{"status": "no_data", "data_loaded": false, "columns": [], "row_count": 0}`))
			})
		})
	})

	Describe("middleware", func() {
		It("turns a panic into a 500 envelope", func() {
			router.GET("/api/boom", func(c *gin.Context) {
				panic(errors.New("boom"))
			})

			resp := get(router, "/api/boom")

			Expect(resp.Code).To(Equal(http.StatusInternalServerError))
			Expect(resp.Body.String()).To(MatchJSON(`{"success": false, "error": "boom", "results": []}`))
		})

		It("allows cross-origin requests", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			resp := httptest.NewRecorder()

			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(resp.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})

		It("answers preflight requests", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/buscar", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			resp := httptest.NewRecorder()

			router.ServeHTTP(resp, req)

			Expect(resp.Code).To(Equal(http.StatusNoContent))
			Expect(resp.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring(http.MethodGet))
		})
	})
})
