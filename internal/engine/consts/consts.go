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

package consts

/**
 * @file: consts.go
 * @description: fiber locals keys and cache prefixes
 */

const (
	// DETAIL 用于设置响应数据，例如查询，需要返回数据
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION 用于设置只返回操作结果的响应，值为提示信息
	// e.g: c.Locals(OPERATION, "Ação removida com sucesso")
	OPERATION = "operation"

	// MEMBER holds the *model.Member resolved by the authorization gate
	MEMBER = "member"

	// CLAIMS holds the *jwt.AuthClaims of the caller
	CLAIMS = "claims"

	// REQUEST_ID holds the X-Request-Id of the request
	REQUEST_ID = "request_id"
)

const (
	// MemberProfileKey caches a member row by member id
	MemberProfileKey = "opsboard:member:"
)

const (
	// CLIENT_IP holds the first hop of X-Forwarded-For / X-Real-IP
	CLIENT_IP = "ip"
)
