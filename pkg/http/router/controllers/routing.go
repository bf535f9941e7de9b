package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/igo/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	validate       *validator.Validate
	trans          ut.Translator
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		validate:       validate,
		trans:          trans,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeRoutes/geojson", api.shortestPathGeoJSON)
	group.GET("/trafficStatus", api.trafficStatus)
	group.GET("/congestions", api.congestions)
}

func parseCoordinateParam(query map[string][]string, name string) (float64, error) {
	values := query[name]
	if len(values) == 0 || values[0] == "" {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	v, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	return v, nil
}

func (api *routingAPI) parseShortestPathRequest(r *http.Request) (shortestPathRequest, error) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	if request.OriginLat, err = parseCoordinateParam(query, "origin_lat"); err != nil {
		return request, err
	}
	if request.OriginLon, err = parseCoordinateParam(query, "origin_lon"); err != nil {
		return request, err
	}
	if request.DestinationLat, err = parseCoordinateParam(query, "destination_lat"); err != nil {
		return request, err
	}
	if request.DestinationLon, err = parseCoordinateParam(query, "destination_lon"); err != nil {
		return request, err
	}

	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return request, fmt.Errorf("validation error: %v", vvString)
	}
	return request, nil
}

// shortestPath
//
//	@Summary		fastest route between two coordinates on the current congestion weighted graph
//	@Tags			routing
//	@Produce		json
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			coordinates		query	bool	false	"include the node coordinates of the route"
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseShortestPathRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	withCoords := r.URL.Query().Get("coordinates") == "true"
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res, withCoords)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPathGeoJSON
//
//	@Summary		fastest route as a GeoJSON FeatureCollection
//	@Tags			routing
//	@Produce		json
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Router			/computeRoutes/geojson [get]
func (api *routingAPI) shortestPathGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.parseShortestPathRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	fc, err := api.routingService.ShortestPathGeoJSON(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Content-Type", "application/geo+json")
	if err := api.writeJSON(w, http.StatusOK, fc, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// trafficStatus
//
//	@Summary		state of the congestion refresh scheduler
//	@Tags			traffic
//	@Produce		json
//	@Router			/trafficStatus [get]
func (api *routingAPI) trafficStatus(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.routingService.TrafficStatus()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// congestions
//
//	@Summary		congestion map of the current weighted graph as a GeoJSON FeatureCollection
//	@Tags			traffic
//	@Produce		json
//	@Router			/congestions [get]
func (api *routingAPI) congestions(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/geo+json")
	if err := api.writeJSON(w, http.StatusOK, api.routingService.CongestionsGeoJSON(), headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
