package database

const itemCostsQuery = `
SELECT t0.Code, t0.AvgPriceAUDEach, t0.ListPriceAUDEach
FROM ManagementPortal.Item AS t0`

// args: years, excluded customer
const orderLinesQuery = `
SELECT
	itm.ItemCode,
	cu.CustomerCode,
	sol.QtyOrdered,
	ipkg.ConversionUnits,
	DATE_FORMAT(sol.DateRequired, '%Y-%m-%d') AS DateRequired,
	si.SiteName
FROM SalesOrderLine AS sol
INNER JOIN SalesOrder AS so ON so.SalesOrderID = sol.SalesOrderID
INNER JOIN EntityTypeTransactionStatus AS ets ON ets.EntityTypeTransactionStatusID = so.EntityTypeTransactionStatusID
INNER JOIN Item AS itm ON itm.ItemID = sol.ItemID
INNER JOIN ItemPackaging AS ipkg ON ipkg.ItemPackagingID = sol.ItemPackagingID
INNER JOIN Site AS si ON si.SiteID = so.SiteID
INNER JOIN Customer AS cu ON cu.CustomerID = so.CustomerID
WHERE sol.DateRequired < NOW()
	AND sol.DateRequired > DATE_SUB(NOW(), INTERVAL ? YEAR)
	AND ets.IsCancelled = 0
	AND ets.IsOnHold = 0
	AND sol.QtyOrdered > 0
	AND cu.CustomerCode <> ?
	AND si.SiteName NOT LIKE '%SAMPLE%'`

// args: years, excluded customer
const despatchLinesQuery = `
SELECT
	DATE_FORMAT(cdl.ProcessedDate, '%Y-%m-%d') AS ProcessedDate,
	i.ItemCode,
	c.CustomerCode,
	cdl.QtyDespatched * ip.ConversionUnits AS QtyEachDespatched,
	s.SiteName,
	DATE_FORMAT(sol.DateRequired, '%Y-%m-%d') AS DateRequired,
	cd.CustomerDespatchNo,
	st.SalesTerritoryName,
	ic.Name AS Category,
	it.Name AS ItemType,
	pc.Name AS ParentCategory
FROM CustomerDespatchLine AS cdl
INNER JOIN EntityTypeTransactionStatus AS etts ON etts.EntityTypeTransactionStatusID = cdl.EntityTypeTransactionStatusID
INNER JOIN Item AS i ON i.ItemID = cdl.ItemID
INNER JOIN ItemPackaging AS ip ON ip.ItemPackagingID = cdl.ItemPackagingID
INNER JOIN CustomerDespatch AS cd ON cd.CustomerDespatchID = cdl.CustomerDespatchID
INNER JOIN Customer AS c ON cd.CustomerID = c.CustomerID
INNER JOIN Site AS s ON s.SiteID = cd.SiteID
LEFT OUTER JOIN SalesOrderLine AS sol ON sol.SalesOrderLineID = cdl.SalesOrderLineID
LEFT OUTER JOIN CustomerInvoiceLine AS cil ON cil.CustomerDespatchLineID = cdl.CustomerDespatchLineID
LEFT OUTER JOIN SalesTerritory AS st ON st.SalesTerritoryID = cil.SalesTerritoryID
LEFT OUTER JOIN ItemCategory AS ic ON ic.ItemCategoryID = i.ItemCategoryID
LEFT OUTER JOIN ItemCategory AS pc ON pc.ItemCategoryID = ic.ParentItemCategoryID
LEFT OUTER JOIN ItemType AS it ON it.ItemTypeID = i.ItemTypeID
WHERE etts.IsDespatched = 1
	AND cdl.ProcessedDate IS NOT NULL
	AND cdl.ProcessedDate > DATE_SUB(NOW(), INTERVAL ? YEAR)
	AND c.CustomerCode <> ?
ORDER BY cdl.ProcessedDate DESC`

// args: excluded customer
const ordersPlacedTodayQuery = `
SELECT SUM(ip.ConversionUnits * sol.QtyOrdered) AS TotalEaches
FROM SalesOrderLine AS sol
INNER JOIN SalesOrder AS so ON so.SalesOrderID = sol.SalesOrderID
INNER JOIN Customer AS cust ON cust.CustomerID = so.CustomerID
INNER JOIN ItemPackaging AS ip ON ip.ItemPackagingID = sol.ItemPackagingID
WHERE DATE(sol.CreatedDate) = CURDATE()
	AND cust.CustomerCode <> ?`

// args: excluded customer
const ordersPlacedTodayValueQuery = `
SELECT SUM(itm.AvgPriceAUDEach * ip.ConversionUnits * sol.QtyOrdered) AS TotalValue
FROM SalesOrderLine AS sol
INNER JOIN SalesOrder AS so ON so.SalesOrderID = sol.SalesOrderID
INNER JOIN Customer AS cust ON cust.CustomerID = so.CustomerID
INNER JOIN Item AS i ON i.ItemID = sol.ItemID
INNER JOIN ItemPackaging AS ip ON ip.ItemPackagingID = sol.ItemPackagingID
INNER JOIN ManagementPortal.Item AS itm ON itm.Code = i.ItemCode
WHERE DATE(sol.CreatedDate) = CURDATE()
	AND cust.CustomerCode <> ?`

// args: years
const itemCodesQuery = `
SELECT DISTINCT itm.ItemCode
FROM SalesOrderLine AS sol
INNER JOIN Item AS itm ON itm.ItemID = sol.ItemID
WHERE sol.DateRequired > DATE_SUB(NOW(), INTERVAL ? YEAR)
ORDER BY itm.ItemCode`
