package handler

import (
	"net/http"

	"github.com/vfg2006/autoads-api/internal/api/handler/router"
	"github.com/vfg2006/autoads-api/internal/usecases/authenticating"
	"github.com/vfg2006/autoads-api/internal/usecases/campaigning"
	"github.com/vfg2006/autoads-api/internal/usecases/offering"
	"github.com/vfg2006/autoads-api/internal/usecases/resolving"
	"github.com/vfg2006/autoads-api/internal/usecases/scoring"
	"github.com/vfg2006/autoads-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/google-ads-credentials",
			Method:      http.MethodPut,
			Handler:     UpdateGoogleAdsCredentials(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Offers(service offering.OfferService, scorer scoring.Scorer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/offers",
			Method:      http.MethodPost,
			Handler:     CreateOffer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers",
			Method:      http.MethodGet,
			Handler:     ListOffers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id",
			Method:      http.MethodGet,
			Handler:     GetOffer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id",
			Method:      http.MethodPut,
			Handler:     UpdateOffer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteOffer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id/scrape",
			Method:      http.MethodPost,
			Handler:     ScrapeOffer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id/launch-score",
			Method:      http.MethodGet,
			Handler:     GetOfferLaunchScore(service, scorer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(service campaigning.CampaignService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Creatives(offerService offering.OfferService, service campaigning.CampaignService, scorer scoring.Scorer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/creatives",
			Method:      http.MethodPost,
			Handler:     CreateCreative(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id",
			Method:      http.MethodGet,
			Handler:     GetCreative(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCreative(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id/score",
			Method:      http.MethodGet,
			Handler:     GetCreativeScore(service, scorer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scores",
			Method:      http.MethodGet,
			Handler:     ListCreativeScores(scorer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id/creatives",
			Method:      http.MethodGet,
			Handler:     ListOfferCreatives(offerService, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/offers/:id/ad-copy",
			Method:      http.MethodPost,
			Handler:     GenerateAdCopy(offerService, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Proxies(resolver resolving.Resolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/proxies/health",
			Method:      http.MethodGet,
			Handler:     GetProxyHealth(resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/proxies/enable",
			Method:      http.MethodPost,
			Handler:     EnableProxy(resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/proxies/disable",
			Method:      http.MethodPost,
			Handler:     DisableProxy(resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
