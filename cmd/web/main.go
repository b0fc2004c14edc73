// @title           cvbuilder API
// @version         1.0
// @description     API конструктора резюме (документация Swagger).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "cvbuilder_backend/internal/app"

func main() {
	app.Run()
}
