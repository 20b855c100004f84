package handlers

import (
	"net/http"
	"strconv"

	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/pkg/validation"
	"go.uber.org/zap"
)

// CatalogHandlers serves the record keeping routes
type CatalogHandlers struct {
	catalog inbound.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(catalog inbound.CatalogService, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		catalog: catalog,
		logger:  logger.Named("catalog-handlers"),
	}
}

// CreateFridge handles POST /fridges
func (h *CatalogHandlers) CreateFridge(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateFridgeCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	fridge, err := h.catalog.CreateFridge(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fridge)
}

// ListFridges handles GET /fridges
func (h *CatalogHandlers) ListFridges(w http.ResponseWriter, r *http.Request) {
	fridges, err := h.catalog.ListFridges(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, fridges)
}

// CreateProduct handles POST /products
func (h *CatalogHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateProductCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /products
func (h *CatalogHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// AddInventory handles POST /inventory
func (h *CatalogHandlers) AddInventory(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AddInventoryCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	line, err := h.catalog.AddInventory(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// ListInventory handles GET /inventory?fridge_ids=1,2
func (h *CatalogHandlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	lines, err := h.catalog.ListInventory(r.Context(), parseIDList(r.URL.Query().Get("fridge_ids")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// ConsolidatedInventory handles GET /inventory/consolidated?fridge_ids=1,2
func (h *CatalogHandlers) ConsolidatedInventory(w http.ResponseWriter, r *http.Request) {
	ids := parseIDList(r.URL.Query().Get("fridge_ids"))
	if len(ids) == 0 {
		writeError(w, r, h.logger, errors.NewBadRequestError("fridge_ids must name at least one fridge"))
		return
	}

	result, err := h.catalog.ConsolidatedInventory(r.Context(), ids)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateInventory handles PUT /inventory/{id}. The quantity comes from
// the query string or a JSON body.
func (h *CatalogHandlers) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var cmd inbound.UpdateInventoryCommand
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, h.logger, errors.NewBadRequestError("Invalid quantity: "+raw))
			return
		}
		cmd.Quantity = q
		if err := validation.Struct(cmd); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	} else if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.catalog.UpdateInventoryQuantity(r.Context(), id, cmd.Quantity); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "quantity": cmd.Quantity})
}

// DeleteInventory handles DELETE /inventory/{id}
func (h *CatalogHandlers) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.catalog.DeleteInventory(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRecipe handles POST /recipes
func (h *CatalogHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateRecipeCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipe, err := h.catalog.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

// ListRecipes handles GET /recipes
func (h *CatalogHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.catalog.ListRecipes(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// AddRecipeIngredient handles POST /recipe_ingredients
func (h *CatalogHandlers) AddRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AddRecipeIngredientCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ingredient, err := h.catalog.AddRecipeIngredient(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, ingredient)
}

// ListRecipeIngredients handles GET /recipe_ingredients?recipe_id=
func (h *CatalogHandlers) ListRecipeIngredients(w http.ResponseWriter, r *http.Request) {
	recipeID, err := optionalID(r, "recipe_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ingredients, err := h.catalog.ListRecipeIngredients(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

// AddEquipment handles POST /equipment
func (h *CatalogHandlers) AddEquipment(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AddEquipmentCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	equipment, err := h.catalog.AddEquipment(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, equipment)
}

// ListEquipment handles GET /equipment?fridge_ids=
func (h *CatalogHandlers) ListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.catalog.ListEquipment(r.Context(), parseIDList(r.URL.Query().Get("fridge_ids")))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

// CreateOrder handles POST /orders
func (h *CatalogHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateOrderCommand
	if err := decode(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.catalog.CreateOrder(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *CatalogHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.catalog.ListOrders(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// DeleteOrder handles DELETE /orders/{id}
func (h *CatalogHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.catalog.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
