package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pdv-multiloja/internal/application/dto"
	"github.com/jhoicas/pdv-multiloja/pkg/jwt"
)

// Locals keys preenchidas pelo middleware de autenticação.
const (
	LocalUserID       = "user_id"
	LocalVendedorNome = "vendedor_nome"
	LocalLoja         = "loja"
	LocalRole         = "role"
)

// AuthMiddleware valida o Bearer Token JWT (emitido pelo subsistema de
// login) e extrai user_id, nome, loja e role para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalVendedorNome, claims.Nome)
		c.Locals(LocalLoja, claims.Loja)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole restringe a rota a um conjunto de roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado para esta função"})
	}
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetVendedorNome devolve o nome do usuário autenticado.
func GetVendedorNome(c *fiber.Ctx) string {
	return localString(c, LocalVendedorNome)
}

// GetLoja devolve a loja do usuário autenticado.
func GetLoja(c *fiber.Ctx) string {
	return localString(c, LocalLoja)
}

// GetRole devolve a role do usuário autenticado.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
