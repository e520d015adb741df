package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stylebot/internal/catalog"
	"stylebot/internal/domain"
	"stylebot/internal/llm"
)

type stubCatalog struct {
	products []domain.Product
	err      error
	queries  []string
}

func (s *stubCatalog) Search(ctx context.Context, query string) ([]domain.Product, error) {
	s.queries = append(s.queries, query)
	return s.products, s.err
}

var _ catalog.Provider = (*stubCatalog)(nil)

func sampleCatalogProducts() []domain.Product {
	return []domain.Product{
		{ID: "prod_001", Name: "Classic White Tee", Description: "Soft cotton tee", Category: "Tops", Price: 19.99, ImageURL: "https://cdn.example.com/tee.jpg"},
		{ID: "prod_002", Name: "Slim Fit Jeans", Description: "Dark wash denim", Category: "Bottoms", Price: 49.99, ImageURL: "https://cdn.example.com/jeans.jpg"},
		{ID: "prod_003", Name: "Linen Summer Dress", Description: "Breezy linen dress", Category: "Dresses", Price: 59.99, ImageURL: "https://cdn.example.com/dress.jpg"},
	}
}

func TestRecommend_TwoStepFlow(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"searchQuery":"summer dress linen"}`,
		`{"products":[{"name":"Linen Summer Dress","rationale":"Light and breezy for summer"},{"name":"Classic White Tee","rationale":"Pairs with everything"}],"overallReasoning":"Both fit a relaxed summer wardrobe."}`,
	}}
	cat := &stubCatalog{products: sampleCatalogProducts()}
	svc := NewRecommendationService(mock, cat, nil)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "something light for summer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.queries) != 1 || cat.queries[0] != "summer dress linen" {
		t.Fatalf("expected derived query used for catalog search, got %v", cat.queries)
	}
	if len(got.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got.Products))
	}
	if got.Products[0].ImageURL != "https://cdn.example.com/dress.jpg" {
		t.Fatalf("expected image url carried from catalog, got %q", got.Products[0].ImageURL)
	}
	if got.OverallReasoning == "" {
		t.Fatalf("expected overall reasoning")
	}
}

func TestRecommend_HallucinatedProductsDropped(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"searchQuery":"jeans"}`,
		`{"products":[{"name":"Slim Fit Jeans","rationale":"Great fit"},{"name":"Imaginary Jacket","rationale":"Does not exist"}],"overallReasoning":"Denim focus."}`,
	}}
	cat := &stubCatalog{products: sampleCatalogProducts()}
	svc := NewRecommendationService(mock, cat, nil)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "jeans"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Products) != 1 {
		t.Fatalf("expected hallucinated product dropped, got %+v", got.Products)
	}
	if got.Products[0].Name != "Slim Fit Jeans" {
		t.Fatalf("unexpected product kept: %+v", got.Products[0])
	}
}

func TestRecommend_ModelImageURLNeverTrusted(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"searchQuery":"tee"}`,
		`{"products":[{"name":"Classic White Tee","rationale":"Staple piece","imageUrl":"https://evil.example.com/x.jpg"}],"overallReasoning":"Basics first."}`,
	}}
	cat := &stubCatalog{products: sampleCatalogProducts()}
	svc := NewRecommendationService(mock, cat, nil)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "a basic tee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Products[0].ImageURL != "https://cdn.example.com/tee.jpg" {
		t.Fatalf("expected catalog image url, got %q", got.Products[0].ImageURL)
	}
}

func TestRecommend_EmptyCatalogIsNotAnError(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"searchQuery":"spacesuit"}`}}
	cat := &stubCatalog{}
	svc := NewRecommendationService(mock, cat, nil)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "a spacesuit"})
	if err != nil {
		t.Fatalf("empty catalog must not be an error, got %v", err)
	}
	if len(got.Products) != 0 {
		t.Fatalf("expected no products, got %+v", got.Products)
	}
	if got.OverallReasoning != emptyCatalogReasoning {
		t.Fatalf("expected explanatory reasoning, got %q", got.OverallReasoning)
	}
	// El paso de seleccion no debe ejecutarse con catalogo vacio.
	if len(mock.Prompts) != 1 {
		t.Fatalf("expected only the query derivation call, got %d prompts", len(mock.Prompts))
	}
}

func TestRecommend_QueryDerivationFailureFallsBackToPreferences(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`not json at all`,
		`{"products":[{"name":"Slim Fit Jeans","rationale":"Solid choice"}],"overallReasoning":"Denim."}`,
	}}
	cat := &stubCatalog{products: sampleCatalogProducts()}
	svc := NewRecommendationService(mock, cat, nil)

	_, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "dark jeans"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.queries) != 1 || cat.queries[0] != "dark jeans" {
		t.Fatalf("expected raw preferences as fallback query, got %v", cat.queries)
	}
}

func TestRecommend_SelectionCappedAtSix(t *testing.T) {
	products := make([]domain.Product, 0, 8)
	picks := make([]string, 0, 8)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		products = append(products, domain.Product{ID: name, Name: "Item " + name, Category: "Tops", Price: 10})
		picks = append(picks, `{"name":"Item `+name+`","rationale":"r"}`)
	}
	mock := &llm.MockClient{Responses: []string{
		`{"searchQuery":"items"}`,
		`{"products":[` + strings.Join(picks, ",") + `],"overallReasoning":"all of them"}`,
	}}
	cat := &stubCatalog{products: products}
	svc := NewRecommendationService(mock, cat, nil)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "everything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Products) != 6 {
		t.Fatalf("expected selection capped at 6, got %d", len(got.Products))
	}
}

type stubSemantic struct {
	products []domain.Product
	err      error
	queries  []string
}

func (s *stubSemantic) SemanticSearch(ctx context.Context, query string, k int) ([]domain.Product, error) {
	s.queries = append(s.queries, query)
	return s.products, s.err
}

func TestRecommend_SemanticFallbackWhenKeywordsMiss(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"searchQuery":"breezy warm weather outfit"}`,
		`{"products":[{"name":"Linen Summer Dress","rationale":"Breathes well"}],"overallReasoning":"Linen for the heat."}`,
	}}
	cat := &stubCatalog{}
	sem := &stubSemantic{products: sampleCatalogProducts()[2:3]}
	svc := NewRecommendationService(mock, cat, nil).WithSemanticSearch(sem)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "something breezy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sem.queries) != 1 {
		t.Fatalf("expected semantic fallback invoked, got %v", sem.queries)
	}
	if len(got.Products) != 1 || got.Products[0].Name != "Linen Summer Dress" {
		t.Fatalf("unexpected products: %+v", got.Products)
	}
}

func TestRecommend_SemanticFallbackFailureStillEmptyResult(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"searchQuery":"spacesuit"}`}}
	cat := &stubCatalog{}
	sem := &stubSemantic{err: errors.New("embeddings down")}
	svc := NewRecommendationService(mock, cat, nil).WithSemanticSearch(sem)

	got, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "a spacesuit"})
	if err != nil {
		t.Fatalf("fallback failure must not be an error: %v", err)
	}
	if len(got.Products) != 0 || got.OverallReasoning != emptyCatalogReasoning {
		t.Fatalf("expected explanatory empty result, got %+v", got)
	}
}

func TestRecommend_CatalogErrorPropagates(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"searchQuery":"jeans"}`}}
	cat := &stubCatalog{err: errors.New("catalog down")}
	svc := NewRecommendationService(mock, cat, nil)

	_, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "jeans"})
	if err == nil {
		t.Fatalf("expected catalog error to propagate")
	}
}

func TestRecommend_SelectionErrorWrapped(t *testing.T) {
	calls := 0
	mock := &failingSecondCallClient{first: `{"searchQuery":"jeans"}`, calls: &calls}
	cat := &stubCatalog{products: sampleCatalogProducts()}
	svc := NewRecommendationService(mock, cat, nil)

	_, err := svc.Recommend(context.Background(), domain.RecommendationRequest{UserPreferences: "jeans"})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

type failingSecondCallClient struct {
	first string
	calls *int
}

func (f *failingSecondCallClient) Generate(ctx context.Context, prompt string) (string, error) {
	*f.calls++
	if *f.calls == 1 {
		return f.first, nil
	}
	return "", errors.New("model unavailable")
}
