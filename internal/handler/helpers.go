package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/apierror"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the numeric :id path param.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return id, true
}

// respondError maps business-rule rejections onto the HTTP taxonomy:
// 404 for missing records, 409 for illegal state transitions, 400 for
// recoverable rejections (quota, balance, inventory, validation), 500 as
// the fallback.
func respondError(c *gin.Context, err error) {
	var (
		saldoErr  *service.SaldoInsuficienteError
		limiteErr *service.LimiteExcedidoError
		cupoErr   *service.CupoExcedidoError
		invErr    *service.InventarioInsuficienteError
		estadoErr *service.EstadoInvalidoError
	)

	switch {
	case errors.As(err, &limiteErr):
		c.JSON(http.StatusBadRequest, apierror.NewLimiteExcedido(limiteErr.Limite, limiteErr.Agendado, limiteErr.Disponible))
	case errors.As(err, &saldoErr):
		c.JSON(http.StatusBadRequest, apierror.NewSaldoInsuficiente(saldoErr.Disponible))
	case errors.As(err, &invErr):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &estadoErr):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &cupoErr):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrClienteNoEncontrado),
		errors.Is(err, service.ErrSubclienteNoEncontrado),
		errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrAgendamientosBloqueados),
		errors.Is(err, service.ErrInventarioAgotado),
		errors.Is(err, service.ErrCedulaOTelefonoEnUso),
		errors.Is(err, service.ErrCedulaEnUso),
		errors.Is(err, service.ErrLitrosInvalidos),
		errors.Is(err, service.ErrTipoCombustibleInvalido),
		errors.Is(err, service.ErrFechaInvalida):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredencialesInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		// Unexpected: let ErrorHandler log it and answer with a safe 500.
		_ = c.Error(err)
	}
}
