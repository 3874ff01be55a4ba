package httperr

import "errors"

// BusinessError é o erro de regra genérico das camadas que ainda não
// têm um erro tipado próprio. O núcleo de agendamento usa os erros de
// domínio; isto cobre o resto (catálogo, cadastro).
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness confere código exato, não só o tipo.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}
