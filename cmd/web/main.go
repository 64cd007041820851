// @title           Sabytin API
// @version         1.0
// @description     API сервиса знакомств и событий.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /

package main

import "sabytin_backend/internal/app"

func main() {
	app.Run()
}
