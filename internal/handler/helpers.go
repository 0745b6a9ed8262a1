package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/apierror"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "JSON invalido: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		fieldErrs := apierror.NewFieldErrors(fields)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": fieldErrs.Message,
			"fields":  fieldErrs.Fields,
		})
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Parametros invalidos"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Parametros invalidos"})
		return false
	}
	return true
}

// respond writes the success envelope.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": true, "message": msg})
}

func respondList(c *gin.Context, data interface{}, pagination dto.Pagination) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": pagination})
}

// fail maps service errors to the error envelope. Unknown errors are pushed
// onto the Gin error stack for the ErrorHandler middleware to log and mask.
func fail(c *gin.Context, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"success": false, "message": apiErr.Message})
		return
	}
	_ = c.Error(err)
}

// parseUUIDParam extracts a UUID path parameter, failing the request on junk.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identificador invalido"})
		return uuid.Nil, false
	}
	return id, true
}
