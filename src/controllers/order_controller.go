package controllers

import (
	"go-shop-api/src/services/order/domain"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	domain.OrderService
}

func NewOrderController(orderService domain.OrderService) *OrderController {
	return &OrderController{
		OrderService: orderService,
	}
}

func (c *OrderController) Route(app fiber.Router) {
	api := app.Group("/api/orders")
	api.Post("/", c.CreateOrder)
	api.Get("/", c.ListOrders)
	api.Get("/:id", c.GetOrder)
}

// CreateOrder godoc
// @Summary      Place an order
// @Description  Stock is checked and decremented item by item. A failing item does not restore stock taken for earlier items.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      domain.OrderRequest  true  "Order payload"
// @Success      201    {object}  domain.Order
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /api/orders [post]
func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var request domain.OrderRequest
	if err := ctx.BodyParser(&request); err != nil {
		return respondBadBody(ctx, err)
	}

	order, err := c.OrderService.CreateOrder(ctx.UserContext(), request)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders godoc
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      500  {object}  ErrorResponse
// @Router       /api/orders [get]
func (c *OrderController) ListOrders(ctx *fiber.Ctx) error {
	orders, err := c.OrderService.ListOrders(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(orders)
}

// GetOrder godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/orders/{id} [get]
func (c *OrderController) GetOrder(ctx *fiber.Ctx) error {
	order, err := c.OrderService.GetOrder(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}
