package controllers

import (
	"log"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/usercontext"
)

// MembersController serves the logged-in area: purchases and course content.
type MembersController struct {
	repos *repository.Repositories
}

var membersController *MembersController

// InitializeMembersController wires the controller with repositories.
// Called once during router setup.
func InitializeMembersController() {
	membersController = &MembersController{
		repos: repository.GetGlobalRepositories(),
	}
}

// GetMembersController returns the initialized controller instance.
func GetMembersController() *MembersController {
	if membersController == nil {
		panic("Members controller not initialized. Call InitializeMembersController first.")
	}
	return membersController
}

// courseModule groups lessons for rendering.
type courseModule struct {
	Number  int
	Lessons []models.CourseLesson
}

// HandleMembers renders the member dashboard with completed purchases.
func (mc *MembersController) HandleMembers(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	orders, err := mc.repos.Order.GetCompletedByEmail(userCtx.Email)
	if err != nil {
		log.Printf("members: load orders for %s: %v", userCtx.Email, err)
	}

	type purchase struct {
		OrderNumber string
		ProductName string
		ProductSlug string
		HasCourse   bool
	}
	purchases := make([]purchase, 0, len(orders))
	for i := range orders {
		product, err := mc.repos.Product.GetByID(orders[i].ProductID)
		if err != nil {
			continue
		}
		count, _ := mc.repos.CourseLesson.CountByProductSlug(product.Slug)
		purchases = append(purchases, purchase{
			OrderNumber: orders[i].OrderNumber,
			ProductName: product.Name,
			ProductSlug: product.Slug,
			HasCourse:   count > 0,
		})
	}

	data := viewData(c, "Members | Rewired")
	data["Purchases"] = purchases

	return c.Render("pages/members", data)
}

// HandleCourse renders the course player for a purchased product: lessons
// grouped by module with the reader's completion state.
func (mc *MembersController) HandleCourse(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	slug := c.Params("slug")

	ok, err := mc.repos.Order.HasCompletedOrder(userCtx.Email, slug)
	if err != nil {
		log.Printf("course: access check for %s: %v", userCtx.Email, err)
	}
	if !ok {
		fm := fiber.Map{
			"type":    "error",
			"message": "You don't have access to that course yet.",
		}
		return flash.WithError(c, fm).Redirect("/members")
	}

	lessons, err := mc.repos.CourseLesson.GetByProductSlug(slug)
	if err != nil {
		log.Printf("course: load lessons for %s: %v", slug, err)
	}

	progress, err := mc.repos.CourseLesson.GetProgress(userCtx.UserID, slug)
	if err != nil {
		log.Printf("course: load progress for %d: %v", userCtx.UserID, err)
	}
	completed := make(map[uint]bool, len(progress))
	for _, p := range progress {
		completed[p.LessonID] = true
	}

	byModule := make(map[int][]models.CourseLesson)
	for _, l := range lessons {
		byModule[l.ModuleNumber] = append(byModule[l.ModuleNumber], l)
	}
	moduleNumbers := make([]int, 0, len(byModule))
	for n := range byModule {
		moduleNumbers = append(moduleNumbers, n)
	}
	sort.Ints(moduleNumbers)
	modules := make([]courseModule, 0, len(moduleNumbers))
	for _, n := range moduleNumbers {
		modules = append(modules, courseModule{Number: n, Lessons: byModule[n]})
	}

	data := viewData(c, "Course | Rewired")
	data["ProductSlug"] = slug
	data["Modules"] = modules
	data["Completed"] = completed
	data["TotalLessons"] = len(lessons)
	data["CompletedCount"] = len(progress)

	return c.Render("pages/course", data)
}

// HandleLessonComplete marks a lesson done for the logged-in member.
// Marking the same lesson twice is a no-op.
func (mc *MembersController) HandleLessonComplete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	slug := c.Params("slug")

	lessonID, err := strconv.ParseUint(c.FormValue("lesson_id"), 10, 32)
	if err != nil {
		return c.Redirect("/members/courses/" + slug)
	}

	lesson, err := mc.repos.CourseLesson.GetByID(uint(lessonID))
	if err != nil || lesson.ProductSlug != slug {
		return c.Redirect("/members/courses/" + slug)
	}

	if err := mc.repos.CourseLesson.MarkComplete(userCtx.UserID, lesson.ID, slug); err != nil {
		log.Printf("course: mark lesson %d complete: %v", lesson.ID, err)
	}

	return c.Redirect("/members/courses/"+slug, fiber.StatusSeeOther)
}
