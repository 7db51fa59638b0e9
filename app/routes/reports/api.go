package reports

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

type generateRequest struct {
	ReportType     string  `json:"reportType" validate:"required,oneof=individual class-wise annual"`
	ClassSectionID *string `json:"classSectionId" validate:"omitempty,uuid"`
	StudentID      *string `json:"studentId" validate:"omitempty,uuid"`
}

// GenerateReportHandler produces one of the three JSON report shapes over
// the current year's outcomes
func GenerateReportHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "reportType is required")
		}

		year, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No current academic year found."})
		}

		switch req.ReportType {
		case "individual":
			return individualReport(c, db, year, req.StudentID)
		case "class-wise":
			return classWiseReport(c, db, year, req.ClassSectionID)
		default:
			return annualReport(c, db, year)
		}
	}
}

func individualReport(c *fiber.Ctx, db *sql.DB, year *models.AcademicYear, studentID *string) error {
	if studentID == nil {
		return helpers.BadRequest(c, "studentId is required")
	}

	enr, err := database.GetEnrollmentForStudent(db, year.ID, *studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No enrollment found for this student in current year."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve enrollment"})
	}

	student, err := database.GetStudentByID(db, *studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve student"})
	}

	label := ""
	if cohort, err := database.GetCohortByID(db, enr.ClassSectionID); err == nil {
		label = cohort.Label
	}

	summary := fiber.Map{
		"averageScore":  nil,
		"overallGrade":  nil,
		"overallResult": nil,
		"classRank":     nil,
		"classSize":     nil,
	}
	if out, err := database.GetOutcomeForStudent(db, year.ID, *studentID); err == nil {
		summary["averageScore"] = out.OverallPercentage
		summary["overallGrade"] = out.OverallGrade
		summary["overallResult"] = out.OverallResult
	} else if err != sql.ErrNoRows {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve outcome"})
	}

	cohortOuts, err := database.GetOutcomesForCohort(db, year.ID, enr.ClassSectionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cohort outcomes"})
	}
	rank, classSize := ClassRank(cohortOuts, *studentID)
	summary["classRank"] = rank
	summary["classSize"] = classSize

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reportType":   "individual",
			"academicYear": year,
			"student":      fiber.Map{"id": student.ID, "name": student.FullName},
			"classLabel":   label,
			"enrollment":   fiber.Map{"roll_number": enr.RollNumber},
			"summary":      summary,
		},
	})
}

func classWiseReport(c *fiber.Ctx, db *sql.DB, year *models.AcademicYear, classSectionID *string) error {
	if classSectionID == nil {
		return helpers.BadRequest(c, "classSectionId is required")
	}

	label := ""
	if cohort, err := database.GetCohortByID(db, *classSectionID); err == nil {
		label = cohort.Label
	}

	enrolls, err := database.GetActiveEnrollments(db, year.ID, *classSectionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve enrollments"})
	}

	outs, err := database.GetOutcomesForCohort(db, year.ID, *classSectionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve outcomes"})
	}
	outMap := make(map[string]models.StudentYearOutcome, len(outs))
	for _, o := range outs {
		outMap[o.StudentID] = o
	}

	dist := NewGradeDistribution()
	matched := make([]models.StudentYearOutcome, 0, len(enrolls))
	rows := make([]fiber.Map, 0, len(enrolls))
	for _, e := range enrolls {
		row := fiber.Map{
			"studentId":          e.StudentID,
			"name":               e.StudentName,
			"roll_number":        e.RollNumber,
			"overall_percentage": nil,
			"overall_grade":      nil,
			"overall_result":     nil,
		}
		if o, ok := outMap[e.StudentID]; ok {
			row["overall_percentage"] = o.OverallPercentage
			row["overall_grade"] = o.OverallGrade
			row["overall_result"] = o.OverallResult
			matched = append(matched, o)
			dist[GradeBucket(o.OverallGrade)]++
		} else {
			dist["N/A"]++
		}
		rows = append(rows, row)
	}

	var avg *float64
	if len(enrolls) > 0 {
		var sum float64
		for _, o := range matched {
			if o.OverallPercentage != nil {
				sum += *o.OverallPercentage
			}
		}
		rounded := RoundTo2(sum / float64(len(enrolls)))
		avg = &rounded
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reportType":        "class-wise",
			"academicYear":      year,
			"classLabel":        label,
			"summary":           fiber.Map{"totalStudents": len(enrolls), "averageScore": avg},
			"gradeDistribution": dist,
			"rows":              rows,
		},
	})
}

func annualReport(c *fiber.Ctx, db *sql.DB, year *models.AcademicYear) error {
	outs, err := database.GetOutcomesForYear(db, year.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve outcomes"})
	}

	dist := NewGradeDistribution()
	for _, o := range outs {
		dist[GradeBucket(o.OverallGrade)]++
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reportType":        "annual",
			"academicYear":      year,
			"summary":           fiber.Map{"totalStudents": len(outs), "averageScore": AverageScore(outs)},
			"gradeDistribution": dist,
		},
	})
}

// FinalizeOutcomesHandler computes and saves year outcomes for a cohort
// from its saved grades: each subject mark is weighted by the class
// grading config, the subject totals are averaged into the overall
// percentage, and letter grade plus pass/fail follow from that
func FinalizeOutcomesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ClassSectionID string `json:"classSectionId" validate:"required,uuid"`
		}
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "classSectionId is required")
		}

		year, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No current academic year found."})
		}

		cohort, err := database.GetCohortByID(db, req.ClassSectionID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class section not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve class section"})
		}

		weights, err := database.GetGradingWeightsForClass(db, cohort.ClassID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve grading weights"})
		}

		assignments, err := database.GetAssignmentsForClassSection(db, req.ClassSectionID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
		}
		if len(assignments) == 0 {
			return helpers.BadRequest(c, "No subjects are assigned to this class section")
		}

		// Sum each student's weighted subject totals across all subjects.
		totals := make(map[string]float64)
		counts := make(map[string]int)
		for _, a := range assignments {
			grades, err := database.GetGradesForAssignment(db, a.ID, year.ID, req.ClassSectionID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve grades"})
			}
			for _, g := range grades {
				totals[g.StudentID] += weights.WeightedTotal(g.Assessment1, g.Assessment2, g.Midterm, g.FinalExam)
				counts[g.StudentID]++
			}
		}

		saved := 0
		for studentID, total := range totals {
			pct := RoundTo2(total / float64(counts[studentID]))
			grade := LetterGrade(pct)
			outcome := models.StudentYearOutcome{
				StudentID:         studentID,
				AcademicYearID:    year.ID,
				ClassSectionID:    &req.ClassSectionID,
				OverallPercentage: &pct,
				OverallGrade:      &grade,
				OverallResult:     ResultFor(pct),
			}
			if err := database.SaveOutcome(db, &outcome); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save outcomes"})
			}
			saved++
		}

		return c.JSON(fiber.Map{"success": true, "finalized": saved})
	}
}
