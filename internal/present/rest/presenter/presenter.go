package presenter

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nanpeixoto/acervus/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validityResponse struct {
	Error   string                       `json:"error"`
	Details domain.ValidityExceededError `json:"details"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	fmt.Println("Bad request:", err)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	fmt.Println("Bad request:", msg)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	fmt.Println("Not found:", msg)
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Conflict(c echo.Context, err error) error {
	fmt.Println("Conflict:", err)
	return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
}

// ValidityExceeded carries the full window payload: chain start and
// end, the computed legal limit and both granularity totals.
func ValidityExceeded(c echo.Context, err domain.ValidityExceededError) error {
	fmt.Println("Validity exceeded:", err)
	return c.JSON(http.StatusUnprocessableEntity, validityResponse{
		Error:   err.Error(),
		Details: err,
	})
}

// BadGateway reports an external collaborator failure, distinct from
// any data-validation status.
func BadGateway(c echo.Context, err error) error {
	fmt.Println("Bad gateway:", err)
	return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
}

func InternalError(c echo.Context, err error) error {
	fmt.Println("Internal error:", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
