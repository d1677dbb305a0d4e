package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/validation"
)

func ListPlans(c *fiber.Ctx) error {
	plans, err := service.ListActivePlans(database.GetDB())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(plans),
		"data": fiber.Map{
			"plans": plans,
		},
	})
}

func GetPlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid plan id",
		})
	}

	plan, err := service.GetPlan(database.GetDB(), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"plan": plan,
		},
	})
}

func CreatePlan(c *fiber.Ctx) error {
	input := new(service.PlanInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	plan, err := service.CreatePlan(database.GetDB(), *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"plan": plan,
		},
	})
}

func UpdatePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid plan id",
		})
	}

	input := new(service.PlanInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	plan, err := service.UpdatePlan(database.GetDB(), uint(id), *input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"plan": plan,
		},
	})
}

func DeletePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid plan id",
		})
	}

	if err := service.DeletePlan(database.GetDB(), uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
