package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/{id}/edit"
	// RouteSuffixDelete is the suffix for delete confirmation routes.
	RouteSuffixDelete = "/{id}/delete"
	// RouteSuffixStatus is the suffix for status toggle routes.
	RouteSuffixStatus = "/{id}/status"
	// RouteSuffixMove is the suffix for category reorder routes.
	RouteSuffixMove = "/{id}/move"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"
	// RouteFeaturesFeatureID is the service features sub-ID route pattern.
	RouteFeaturesFeatureID = "/{id}/features/{featureId}"
	// RouteMediaPairID is the service media pair sub-ID route pattern.
	RouteMediaPairID = "/{id}/media/{pairId}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteBlog is the public blog route.
	RouteBlog = "/blog"
	// RouteProjects is the public projects route.
	RouteProjects = "/projects"
	// RouteMediaServices is the public media/services route.
	RouteMediaServices = "/media"
	// RouteAbout is the public about route.
	RouteAbout = "/about"
	// RouteContact is the public contact route.
	RouteContact = "/contact"

	// RoutePosts is the blog posts admin route.
	RoutePosts = "/posts"
	// RouteAdminProjects is the projects admin route.
	RouteAdminProjects = "/projects"
	// RouteCategories is the project categories admin route.
	RouteCategories = "/categories"
	// RouteServices is the media services admin route.
	RouteServices = "/services"
	// RouteVideos is the videos admin route.
	RouteVideos = "/videos"
	// RouteSEO is the SEO settings admin route.
	RouteSEO = "/seo"
)

// Admin redirect targets.
const (
	redirectAdmin           = "/admin"
	redirectAdminPosts      = redirectAdmin + RoutePosts
	redirectAdminPostsNew   = redirectAdminPosts + RouteSuffixNew
	redirectAdminProjects   = redirectAdmin + RouteAdminProjects
	redirectAdminCategories = redirectAdmin + RouteCategories
	redirectAdminServices   = redirectAdmin + RouteServices
	redirectAdminVideos     = redirectAdmin + RouteVideos
	redirectAdminSEO        = redirectAdmin + RouteSEO
	redirectLogin           = RouteLogin

	redirectAdminPostsID    = redirectAdminPosts + "/%d/edit"
	redirectAdminProjectsID = redirectAdminProjects + "/%d/edit"
	redirectAdminServicesID = redirectAdminServices + "/%d/edit"
)
