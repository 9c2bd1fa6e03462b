package agency

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vbokhan/spy-cat-agency/internal/models"
	"github.com/vbokhan/spy-cat-agency/internal/myerrors"
	"github.com/vbokhan/spy-cat-agency/internal/services"
	"github.com/vbokhan/spy-cat-agency/pkg/catapi"
)

var Endpoints = struct {
	Root string

	CatCreate string
	CatGet    string
	CatGetAll string
	CatSalary string
	CatDelete string

	MissionCreate string
	MissionGet    string
	MissionGetAll string
	MissionAssign string
	MissionDelete string

	TargetNotes    string
	TargetComplete string
}{
	Root: "/",

	CatCreate: "/cats",
	CatGetAll: "/cats",
	CatGet:    "/cats/:id",
	CatSalary: "/cats/:id/salary",
	CatDelete: "/cats/:id",

	MissionCreate: "/missions",
	MissionGetAll: "/missions",
	MissionGet:    "/missions/:id",
	MissionAssign: "/missions/:id/assign-cat",
	MissionDelete: "/missions/:id",

	TargetNotes:    "/missions/:id/targets/:targetId/notes",
	TargetComplete: "/missions/:id/targets/:targetId/complete",
}

type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	catService     services.CatService
	missionService services.MissionService
}

func NewServer(catService services.CatService, missionService services.MissionService) *Server {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	server := &Server{
		router:         router,
		catService:     catService,
		missionService: missionService,
	}

	router.GET(Endpoints.Root, server.handleRoot)

	router.POST(Endpoints.CatCreate, server.handleAddCat)
	router.GET(Endpoints.CatGetAll, server.handleGetAllCats)
	router.GET(Endpoints.CatGet, server.handleGetCat)
	router.PATCH(Endpoints.CatSalary, server.handleUpdateCatSalary)
	router.DELETE(Endpoints.CatDelete, server.handleDeleteCat)

	router.POST(Endpoints.MissionCreate, server.handleAddMission)
	router.GET(Endpoints.MissionGetAll, server.handleGetAllMissions)
	router.GET(Endpoints.MissionGet, server.handleGetMission)
	router.POST(Endpoints.MissionAssign, server.handleAssignCat)
	router.DELETE(Endpoints.MissionDelete, server.handleDeleteMission)

	router.PATCH(Endpoints.TargetNotes, server.handleUpdateTargetNotes)
	router.PATCH(Endpoints.TargetComplete, server.handleCompleteTarget)

	return server
}

func (s *Server) handleRoot(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Welcome to the Spy Cat Agency API!"})
}

func (s *Server) handleAddCat(ctx *gin.Context) {
	var cat models.Cat
	if err := ctx.ShouldBindJSON(&cat); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	newCat, err := s.catService.Add(ctx, cat)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newCat)
}

func (s *Server) handleGetCat(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "cat")
	if !ok {
		return
	}
	cat, err := s.catService.GetById(ctx, id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

func (s *Server) handleGetAllCats(ctx *gin.Context) {
	var query models.PaginationQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	cats, err := s.catService.GetAll(ctx, query)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	if cats == nil {
		cats = []models.Cat{}
	}
	ctx.JSON(http.StatusOK, cats)
}

func (s *Server) handleUpdateCatSalary(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "cat")
	if !ok {
		return
	}
	var update models.CatUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "salary must be provided and positive: " + err.Error(),
		})
		return
	}
	updatedCat, err := s.catService.Update(ctx, id, update)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedCat)
}

func (s *Server) handleDeleteCat(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "cat")
	if !ok {
		return
	}
	if err := s.catService.DeleteById(ctx, id); err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *Server) handleAddMission(ctx *gin.Context) {
	var create models.MissionCreate
	if err := ctx.ShouldBindJSON(&create); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "a mission must have between 1 and 3 targets: " + err.Error(),
		})
		return
	}
	mission, err := s.missionService.Add(ctx, create)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, mission)
}

func (s *Server) handleGetMission(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "mission")
	if !ok {
		return
	}
	mission, err := s.missionService.GetById(ctx, id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleGetAllMissions(ctx *gin.Context) {
	var query models.PaginationQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	missions, err := s.missionService.GetAll(ctx, query)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	if missions == nil {
		missions = []models.Mission{}
	}
	ctx.JSON(http.StatusOK, missions)
}

func (s *Server) handleAssignCat(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "mission")
	if !ok {
		return
	}
	var assignment models.MissionAssignment
	if err := ctx.ShouldBindJSON(&assignment); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	mission, err := s.missionService.Assign(ctx, id, assignment.CatId)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleUpdateTargetNotes(ctx *gin.Context) {
	missionId, ok := pathId(ctx, "id", "mission")
	if !ok {
		return
	}
	targetId, ok := pathId(ctx, "targetId", "target")
	if !ok {
		return
	}
	var update models.TargetUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	target, err := s.missionService.UpdateTargetNotes(ctx, missionId, targetId, update)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func (s *Server) handleCompleteTarget(ctx *gin.Context) {
	missionId, ok := pathId(ctx, "id", "mission")
	if !ok {
		return
	}
	targetId, ok := pathId(ctx, "targetId", "target")
	if !ok {
		return
	}
	target, err := s.missionService.CompleteTarget(ctx, missionId, targetId)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func (s *Server) handleDeleteMission(ctx *gin.Context) {
	id, ok := pathId(ctx, "id", "mission")
	if !ok {
		return
	}
	if err := s.missionService.Delete(ctx, id); err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// writeError maps rule-engine and breed-api failures to status codes:
// not-found 404, conflict 409, forbidden/invalid-input 400, unknown breed
// 400, breed api error answer 502, breed api unreachable 503.
func (s *Server) writeError(ctx *gin.Context, err error) {
	var reqErr *myerrors.RequestError
	if errors.As(err, &reqErr) {
		status := http.StatusBadRequest
		switch reqErr.Kind {
		case myerrors.KindNotFound:
			status = http.StatusNotFound
		case myerrors.KindConflict:
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{
			"message": reqErr.Message,
		})
		return
	}

	if errors.Is(err, catapi.ErrBreedNotFound) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	var upstreamErr *catapi.UpstreamError
	if errors.As(err, &upstreamErr) {
		ctx.JSON(http.StatusBadGateway, gin.H{
			"message": "could not validate breed: " + upstreamErr.Error(),
		})
		return
	}
	if errors.Is(err, catapi.ErrUnavailable) {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "could not validate breed: " + err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"message": err.Error(),
	})
}

func pathId(ctx *gin.Context, param, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"message": entity + " not found. Use number as id!",
		})
		return 0, false
	}
	return id, true
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
