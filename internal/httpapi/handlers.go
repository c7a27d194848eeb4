package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/abhisek/adaptiq/internal/session"
)

type createSessionRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"max=256"`
	Name     string `json:"name" validate:"max=64"`
}

type sessionResponse struct {
	SessionID string          `json:"sessionId"`
	Account   session.Account `json:"account"`
}

type assessmentRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count" validate:"omitempty,min=1,max=50"`
	Level string `json:"level" validate:"omitempty,oneof=easy medium hard"`
}

type assessmentResponse struct {
	SessionID string                `json:"sessionId"`
	Questions []assessment.Question `json:"questions"`
}

type attemptRequest struct {
	QuestionID     string `json:"questionId" validate:"required"`
	SelectedAnswer string `json:"selectedAnswer" validate:"required"`
	// ResponseTime is in whole seconds. When absent the server measures
	// from the previous answer or the start of the assessment.
	ResponseTime *int `json:"responseTime" validate:"omitempty,min=0"`
}

type attemptResponse struct {
	Attempt  session.Attempt `json:"attempt"`
	Answered int             `json:"answered"`
	Total    int             `json:"total"`
	Done     bool            `json:"done"`
}

func (s *Server) bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.validate.Struct(out)
}

func (s *Server) lookup(c *fiber.Ctx) (*session.Session, error) {
	return s.registry.Get(c.Params("id"))
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	account, err := session.Login(req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	sess := s.registry.Create(account)
	sess.SetLogger(s.logger)
	return c.Status(fiber.StatusCreated).JSON(sessionResponse{SessionID: sess.ID(), Account: account})
}

// quizConfig fills in the defaults for omitted fields.
func quizConfig(count int, level string) assessment.QuizConfig {
	cfg := assessment.QuizConfig{Count: count, Level: assessment.Difficulty(level)}
	if cfg.Count == 0 {
		cfg.Count = assessment.DefaultQuestionCount
	}
	if cfg.Level == "" {
		cfg.Level = assessment.Medium
	}
	return cfg
}

func (s *Server) generateFromText(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	var req assessmentRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return s.generate(c, sess, material.FromText(req.Text), quizConfig(req.Count, req.Level))
}

func (s *Server) generateFromUpload(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}

	form := struct {
		Count int    `validate:"omitempty,min=1,max=50"`
		Level string `validate:"omitempty,oneof=easy medium hard"`
	}{Level: c.FormValue("level")}
	if raw := c.FormValue("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "count must be a number")
		}
		form.Count = n
	}
	if err := s.validate.Struct(form); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return material.ErrMissing
	}
	if fh.Size > material.MaxFileSize {
		return &material.TooLargeError{Name: fh.Filename, Limit: material.MaxFileSize}
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := material.Ingest(fh.Filename, f, material.ModeText)
	if err != nil {
		return err
	}
	return s.generate(c, sess, m, quizConfig(form.Count, form.Level))
}

func (s *Server) generate(c *fiber.Ctx, sess *session.Session, m material.Material, cfg assessment.QuizConfig) error {
	if err := material.Validate(m); err != nil {
		return err
	}
	questions, err := sess.Generate(s.requestContext(c), s.generator, m, cfg)
	if err != nil {
		return err
	}
	return c.JSON(assessmentResponse{SessionID: sess.ID(), Questions: questions})
}

func (s *Server) recordAttempt(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	var req attemptRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	var attempt session.Attempt
	if req.ResponseTime != nil {
		attempt, err = sess.RecordAttemptElapsed(req.QuestionID, req.SelectedAnswer, time.Duration(*req.ResponseTime)*time.Second)
	} else {
		attempt, err = sess.RecordAttempt(req.QuestionID, req.SelectedAnswer)
	}
	if err != nil {
		return err
	}

	answered, total := sess.Progress()
	return c.JSON(attemptResponse{
		Attempt:  attempt,
		Answered: answered,
		Total:    total,
		Done:     answered == total,
	})
}

func (s *Server) report(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	r, err := sess.Report()
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (s *Server) restart(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	sess.Restart()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	if err := s.registry.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
