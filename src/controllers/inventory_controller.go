package controllers

import (
	"go-shop-api/src/services/inventory"

	"github.com/gofiber/fiber/v2"
)

type InventoryController struct {
	inventoryService inventory.InventoryService
}

func NewInventoryController(inventoryService inventory.InventoryService) *InventoryController {
	return &InventoryController{
		inventoryService: inventoryService,
	}
}

func (c *InventoryController) Route(app fiber.Router) {
	api := app.Group("/api/products")
	api.Post("/", c.CreateProduct)
	api.Get("/", c.ListProducts)
	// registered before /:id so "category" is not taken for an id
	api.Get("/category/:category", c.ListByCategory)
	api.Get("/:id", c.GetProduct)
	api.Put("/:id", c.UpdateProduct)
	api.Delete("/:id", c.DeleteProduct)
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product  body      inventory.ProductInput  true  "Product payload"
// @Success      201      {object}  inventory.Product
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/products [post]
func (c *InventoryController) CreateProduct(ctx *fiber.Ctx) error {
	var input inventory.ProductInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondBadBody(ctx, err)
	}

	product, err := c.inventoryService.CreateProduct(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(product)
}

// ListProducts godoc
// @Summary      List products
// @Description  Filters combine with AND. Price bounds are inclusive, search is a case-insensitive substring of the name.
// @Tags         products
// @Produce      json
// @Param        search      query     string  false  "Name substring"
// @Param        categories  query     string  false  "Comma-separated categories, any match"
// @Param        minPrice    query     number  false  "Lowest price"
// @Param        maxPrice    query     number  false  "Highest price"
// @Param        sortBy      query     string  false  "Field to sort by"
// @Param        sortOrder   query     string  false  "asc or desc"
// @Success      200         {array}   inventory.Product
// @Failure      400         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/products [get]
func (c *InventoryController) ListProducts(ctx *fiber.Ctx) error {
	var query inventory.ProductQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid query: " + err.Error()})
	}

	filter, err := inventory.ParseProductQuery(query)
	if err != nil {
		return respondError(ctx, err)
	}

	products, err := c.inventoryService.ListProducts(ctx.UserContext(), filter)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}

// GetProduct godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  inventory.Product
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/products/{id} [get]
func (c *InventoryController) GetProduct(ctx *fiber.Ctx) error {
	product, err := c.inventoryService.GetProduct(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(product)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Description  Only name, category, price and description can change.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Product ID"
// @Param        product  body      inventory.ProductUpdate  true  "Fields to change"
// @Success      200      {object}  inventory.Product
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/products/{id} [put]
func (c *InventoryController) UpdateProduct(ctx *fiber.Ctx) error {
	var update inventory.ProductUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return respondBadBody(ctx, err)
	}

	product, err := c.inventoryService.UpdateProduct(ctx.UserContext(), ctx.Params("id"), update)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(product)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/products/{id} [delete]
func (c *InventoryController) DeleteProduct(ctx *fiber.Ctx) error {
	if err := c.inventoryService.DeleteProduct(ctx.UserContext(), ctx.Params("id")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(MessageResponse{Message: "Product deleted"})
}

// ListByCategory godoc
// @Summary      List products in a category
// @Description  Exact, case-sensitive match.
// @Tags         products
// @Produce      json
// @Param        category  path      string  true  "Category"
// @Success      200       {array}   inventory.Product
// @Failure      500       {object}  ErrorResponse
// @Router       /api/products/category/{category} [get]
func (c *InventoryController) ListByCategory(ctx *fiber.Ctx) error {
	products, err := c.inventoryService.ListByCategory(ctx.UserContext(), ctx.Params("category"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}
