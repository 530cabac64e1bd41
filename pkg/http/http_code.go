// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"fmt"
	"net/http"
)

// Error is a failure that maps to one HTTP status and one user visible message.
type Error struct {
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same status and message, ignoring the cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Status == e.Status && t.Msg == e.Msg
}

// WithCause returns a copy of e carrying err as its cause.
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Msg: e.Msg, Err: err}
}

var (
	// Unauthorized 401
	Unauthorized           = failed(http.StatusUnauthorized, "Não autorizado")
	TokenEmpty             = failed(http.StatusUnauthorized, "Não autorizado, sem token")
	InvalidToken           = failed(http.StatusUnauthorized, "Não autorizado, token inválido")
	TokenExpired           = failed(http.StatusUnauthorized, "Não autorizado, token expirado")
	MemberNotFoundForToken = failed(http.StatusUnauthorized, "Não autorizado, usuário não encontrado")
	InvalidCredentials     = failed(http.StatusUnauthorized, "Credenciais inválidas")

	// Forbidden 403
	Forbidden = failed(http.StatusForbidden, "Sem permissão")

	// NotFound 404
	NotFound        = failed(http.StatusNotFound, "Recurso não encontrado")
	ActionNotFound  = failed(http.StatusNotFound, "Ação não encontrada")
	MemberNotFound  = failed(http.StatusNotFound, "Membro não encontrado")
	ProfileNotFound = failed(http.StatusNotFound, "Perfil não encontrado")

	// BadRequest 400
	BadRequest        = failed(http.StatusBadRequest, "Dados inválidos")
	InvalidID         = failed(http.StatusBadRequest, "ID inválido")
	UserAlreadyExist  = failed(http.StatusBadRequest, "Usuário já existe")
	InvalidActionType = failed(http.StatusBadRequest, "Tipo de ação inválido")
	InvalidOutcome    = failed(http.StatusBadRequest, "Resultado inválido")
	InvalidActionName = failed(http.StatusBadRequest, "Nome de ação inválido para o tipo informado")
	InvalidRole       = failed(http.StatusBadRequest, "Cargo inválido")
	InvalidPeriod     = failed(http.StatusBadRequest, "Período inválido")
	InvalidDate       = failed(http.StatusBadRequest, "Data inválida")

	// InternalError 500
	InternalError      = failed(http.StatusInternalServerError, "Erro interno do servidor")
	RegisterFailed     = failed(http.StatusInternalServerError, "Erro ao criar usuário")
	LoginFailed        = failed(http.StatusInternalServerError, "Erro ao fazer login")
	LogoutFailed       = failed(http.StatusInternalServerError, "Erro ao fazer logout")
	ProfileFailed      = failed(http.StatusInternalServerError, "Erro ao buscar perfil")
	ListActionsFailed  = failed(http.StatusInternalServerError, "Erro ao buscar ações")
	CreateActionFailed = failed(http.StatusInternalServerError, "Erro ao criar ação")
	UpdateActionFailed = failed(http.StatusInternalServerError, "Erro ao atualizar ação")
	DeleteActionFailed = failed(http.StatusInternalServerError, "Erro ao deletar ação")
	ListMembersFailed  = failed(http.StatusInternalServerError, "Erro ao buscar membros")
	UpdateMemberFailed = failed(http.StatusInternalServerError, "Erro ao atualizar membro")
	DeleteMemberFailed = failed(http.StatusInternalServerError, "Erro ao deletar membro")
	StatisticsFailed   = failed(http.StatusInternalServerError, "Erro ao buscar estatísticas")
)

const (
	MsgActionRemoved = "Ação removida com sucesso"
	MsgMemberRemoved = "Membro removido com sucesso"
	MsgLogout        = "Logout realizado com sucesso"
	MsgActionCreated = "Ação registrada com sucesso! +%d XP"
)

// failed 构造函数
func failed(status int, msg string) *Error {
	return &Error{
		Status: status,
		Msg:    msg,
	}
}
