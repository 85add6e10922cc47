package handler

import (
	"fmt"
	"net/url"

	"github.com/alshadows/product-catalog/internal/api/response"
	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

const productsPath = "/api/v1/products"

// --- Request → Service input ---

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	in := ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

func toUpdateInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
}

// --- Service result → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CreationDate: p.CreatedAt.UTC(),
		UpdateDate:   p.UpdatedAt.UTC(),
	}
}

func toPageResponse(page domain.Page[*domain.Product]) productPageResponse {
	content := make([]productResponse, 0, len(page.Items))
	for _, p := range page.Items {
		content = append(content, toProductResponse(p))
	}
	return productPageResponse{
		Content:       content,
		Number:        page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    page.TotalPages(),
		First:         !page.HasPrevious(),
		Last:          !page.HasNext(),
	}
}

// --- Links ---

func productPath(id string) string {
	return productsPath + "/" + url.PathEscape(id)
}

// productLinks maps every requested relation to the product's URI.
func productLinks(id string, rels ...string) response.Links {
	links := make(response.Links, len(rels))
	for _, rel := range rels {
		links[rel] = productPath(id)
	}
	return links
}

func listLinks(page domain.Page[*domain.Product], sort string) response.Links {
	links := response.Links{"self": productsPath}
	if page.HasNext() {
		links["next"] = fmt.Sprintf("%s?page=%d&size=%d&sort=%s", productsPath, page.Page+1, page.Size, url.QueryEscape(sort))
	}
	if page.HasPrevious() {
		links["prev"] = fmt.Sprintf("%s?page=%d&size=%d&sort=%s", productsPath, page.Page-1, page.Size, url.QueryEscape(sort))
	}
	return links
}

func searchLinks(page domain.Page[*domain.Product], term string) response.Links {
	base := productsPath + "/search?searchTerm=" + url.QueryEscape(term)
	links := response.Links{"self": base}
	if page.HasNext() {
		links["next"] = fmt.Sprintf("%s&page=%d&size=%d", base, page.Page+1, page.Size)
	}
	if page.HasPrevious() {
		links["prev"] = fmt.Sprintf("%s&page=%d&size=%d", base, page.Page-1, page.Size)
	}
	return links
}
