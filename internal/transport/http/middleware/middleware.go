// middleware - net/http-обёртки REST API pokedex-service.
// Подключаются через chi.Router.Use в порядке RequestID -> Access -> Recover -> Timeout.
package middleware

import (
	"net/http"
)

// Middleware - стандартный net/http мидлвар.
type Middleware = func(http.Handler) http.Handler

// recorder запоминает статус и объём ответа для Access.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *recorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(p []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}

	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}

// Unwrap нужен http.ResponseController.
func (rw *recorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Status - итоговый статус; ответ без записи считается 200.
func (rw *recorder) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}
